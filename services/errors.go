package services

import "errors"

// Типизированные ошибки ядра. Сервисы возвращают их как есть,
// контроллеры отображают в HTTP-статусы.
var (
	// ErrLoanNotFound кредит не существует
	ErrLoanNotFound = errors.New("кредит не найден")

	// ErrNoPendingObligation по кредиту нет неоплаченных расчетных периодов,
	// либо кредит уже закрыт
	ErrNoPendingObligation = errors.New("по кредиту нет неоплаченных платежей")

	// ErrInsufficientForPastDue платеж обязан сначала полностью покрыть
	// просроченную задолженность
	ErrInsufficientForPastDue = errors.New("платеж должен сначала покрыть просроченную задолженность")

	// ErrInvalidAmount сумма платежа должна быть положительной
	ErrInvalidAmount = errors.New("сумма должна быть больше нуля")

	// ErrArithmetic некорректные параметры финансового расчета
	// (нулевой срок, вырожденная ставка и т.п.)
	ErrArithmetic = errors.New("некорректные параметры расчета")

	// ErrCycleAlreadyBilled расчетный период для текущего окна уже сформирован
	ErrCycleAlreadyBilled = errors.New("расчетный период уже сформирован")

	// ErrUserNotFound пользователь не существует
	ErrUserNotFound = errors.New("пользователь не найден")

	// Ошибки проверки права на кредит
	ErrScoreNotReady  = errors.New("кредитный рейтинг еще не рассчитан")
	ErrLowCreditScore = errors.New("кредитный рейтинг слишком низкий")
	ErrLowIncome      = errors.New("годовой доход слишком низкий")
	ErrAmountTooHigh  = errors.New("сумма кредита превышает максимальный лимит")
	ErrRateTooLow     = errors.New("процентная ставка слишком низкая")
)
