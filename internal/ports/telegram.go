package ports

import "github.com/larriantoniy/tg_carbon_bot/internal/domain"

// TelegramClient определяет интерфейс бота для работы с Telegram.
// Реализуется адаптером TDLib; в тестах подменяется фейком.
type TelegramClient interface {
	// Listen возвращает канал входящих событий (текст и нажатия кнопок)
	Listen() (<-chan domain.Update, error)
	// SendMessage отправляет новое сообщение в чат
	SendMessage(chatID int64, reply domain.Reply) error
	// EditMessage заменяет текст и клавиатуру уже отправленного сообщения
	EditMessage(chatID, messageID int64, reply domain.Reply) error
	// AnswerCallback снимает "часики" с нажатой кнопки
	AnswerCallback(queryID int64) error
	Close()
}
