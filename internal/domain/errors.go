package domain

import "errors"

var (
	// ErrInvalidInput: пользователь прислал не то, что ждали (не число, пустой ответ и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownTransport: вид транспорта не из меню
	ErrUnknownTransport = errors.New("unknown transport")
	// ErrInvalidTrip: поездка не прошла валидацию перед расчётом
	ErrInvalidTrip = errors.New("invalid trip")
	// ErrExternalService: внешний сервис оценки недоступен или ответил мусором
	ErrExternalService = errors.New("external estimate service failure")
	// ErrSessionNotFound: у пользователя нет активного диалога
	ErrSessionNotFound = errors.New("session not found")
)
