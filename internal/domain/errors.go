package domain

import "errors"

var (
	// Ошибка отсутствующего имени клиента.
	ErrCustomerRequired = errors.New("customer name is required")
	// Ошибка при некорректном количестве вещей в позиции (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если цена позиции не положительная.
	ErrItemPriceInvalid = errors.New("item unit price must be greater than zero")
	// Ошибка несоответствия суммы строки количеству и цене.
	ErrLineTotalMismatch = errors.New("item line total does not match quantity and price")
	// Ошибка несоответствия итога заказа суммам позиций.
	ErrAmountMismatch = errors.New("order total does not match items sum")

	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderExists — попытка вставить заказ с уже занятым идентификатором.
	ErrOrderExists = errors.New("order already exists")
	// ErrUserNotFound возвращается, если пользователь не найден (в том числе
	// при несовпадении учётных данных).
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken — нарушение уникальности username на уровне хранилища.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrOrderNotQueued — назначение исполнителя возможно только из QUEUED.
	ErrOrderNotQueued = errors.New("order is not queued")
	// ErrOrderNotProcessing — завершение возможно только из PROCESSING.
	ErrOrderNotProcessing = errors.New("order is not processing")
	// ErrOrderNotCompleted — выдача возможна только из COMPLETED.
	ErrOrderNotCompleted = errors.New("order is not completed")
	// ErrOrderTerminal — заказ уже в терминальном состоянии.
	ErrOrderTerminal = errors.New("order is in a terminal state")
	// ErrPaymentAlreadyCollected — повторный сбор оплаты.
	ErrPaymentAlreadyCollected = errors.New("payment already collected")
)
