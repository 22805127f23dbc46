package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

const centralBankURL = "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"

// GetCentralBankRate получает текущую ключевую ставку центрального банка.
// Ставка записывается в кредит как базовая на момент выдачи.
func GetCentralBankRate() (decimal.Decimal, error) {
	// Запрашиваем ставку за последнюю неделю, берем самое свежее значение
	to := time.Now()
	from := to.AddDate(0, 0, -7)

	soapRequest := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <KeyRate xmlns="http://web.cbr.ru/">
      <fromDate>%s</fromDate>
      <ToDate>%s</ToDate>
    </KeyRate>
  </soap:Body>
</soap:Envelope>`, from.Format("2006-01-02"), to.Format("2006-01-02"))

	req, err := http.NewRequest(http.MethodPost, centralBankURL, strings.NewReader(soapRequest))
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка создания запроса: %v", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка запроса к центральному банку: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("центральный банк вернул статус %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ошибка чтения ответа: %v", err)
	}

	return parseKeyRate(body)
}

// parseKeyRate извлекает последнее значение ставки из SOAP-ответа
func parseKeyRate(body []byte) (decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return decimal.Zero, fmt.Errorf("ошибка разбора XML: %v", err)
	}

	rows := doc.FindElements("//KR")
	if len(rows) == 0 {
		return decimal.Zero, errors.New("в ответе центрального банка нет данных о ставке")
	}

	rateElem := rows[len(rows)-1].SelectElement("Rate")
	if rateElem == nil {
		return decimal.Zero, errors.New("в ответе центрального банка отсутствует значение ставки")
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(rateElem.Text()))
	if err != nil {
		return decimal.Zero, fmt.Errorf("некорректное значение ставки: %v", err)
	}

	return rate, nil
}
