package claims

import "claimdesk/internal/models"

// LeastLoaded выбирает HR с минимальным числом Pending-заявок.
// Ничья — побеждает более ранний в списке (список упорядочен по id).
// Пустой список — nil: заявка создаётся без назначения.
// Ошибка подсчёта нагрузки исключает кандидата, но не валит выбор.
func LeastLoaded(hrs []models.Hr, pending func(hrID uint) (int64, error)) *models.Hr {
	var best *models.Hr
	var bestLoad int64
	for i := range hrs {
		n, err := pending(hrs[i].ID)
		if err != nil {
			continue
		}
		if best == nil || n < bestLoad {
			best = &hrs[i]
			bestLoad = n
		}
	}
	return best
}
