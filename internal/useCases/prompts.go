package useCases

import (
	"github.com/larriantoniy/tg_carbon_bot/internal/domain"
)

const (
	welcomeText   = "Welcome! I'm your bot to calculate travel CO₂ waste. Choose your mode of transport:"
	brandText     = "Choose your car brand:"
	engineLiters  = "Enter your engine size in liters (e.g. 2.0):"
	engineCC      = "Enter your engine size in cc (e.g. 500):"
	distanceText  = "Enter the length of your ride in km:"
	invalidNumber = "Please send a positive number."
	invalidChoice = "Please pick one of the options below."
	cancelledText = "Calculation cancelled."
	noSessionText = "There is no calculation in progress. Send /start to begin."
	failureText   = "Something went wrong, please try again with /start."
	helpText      = "I estimate the CO₂ footprint of a trip.\n" +
		"/start - begin a new calculation\n" +
		"/cancel - abort the current one\n" +
		"/help - show this message"
)

// brandsPerRow: по две марки в ряд, чтобы меню из 20 кнопок помещалось на экран.
const brandsPerRow = 2

// promptFor строит вопрос для поля field с учётом уже выбранного транспорта.
func promptFor(s domain.Session, field domain.State, rates domain.RateTable) domain.Reply {
	switch field {
	case domain.StateTransport:
		return domain.Reply{Text: welcomeText, Keyboard: transportKeyboard()}
	case domain.StateBrand:
		return domain.Reply{Text: brandText, Keyboard: brandKeyboard(rates)}
	case domain.StateEngine:
		if m, ok := domain.LookupMode(s.Transport); ok && m.EngineUnit == domain.EngineUnitCC {
			return domain.Reply{Text: engineCC}
		}
		return domain.Reply{Text: engineLiters}
	default:
		return domain.Reply{Text: distanceText}
	}
}

// repromptFor: тот же вопрос с пояснением, почему ответ не подошёл.
func repromptFor(s domain.Session, field domain.State, rates domain.RateTable) domain.Reply {
	r := promptFor(s, field, rates)
	notice := invalidNumber
	if len(r.Keyboard) > 0 {
		notice = invalidChoice
	}
	r.Text = notice + " " + r.Text
	return r
}

func transportKeyboard() [][]domain.Button {
	modes := domain.Modes()
	rows := make([][]domain.Button, 0, len(modes))
	for _, m := range modes {
		rows = append(rows, []domain.Button{{Text: m.Title, Data: string(m.Transport)}})
	}
	return rows
}

func brandKeyboard(rates domain.RateTable) [][]domain.Button {
	brands := rates.Brands()
	rows := make([][]domain.Button, 0, (len(brands)+brandsPerRow-1)/brandsPerRow)
	for i := 0; i < len(brands); i += brandsPerRow {
		end := min(i+brandsPerRow, len(brands))
		row := make([]domain.Button, 0, brandsPerRow)
		for _, b := range brands[i:end] {
			row = append(row, domain.Button{Text: b, Data: b})
		}
		rows = append(rows, row)
	}
	return rows
}
