package get_available_slots

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID int64  // ID услуги
	Date      string // Дата в формате "YYYY-MM-DD"
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            string   `json:"date"`
	ServiceID       int64    `json:"serviceId"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"` // Времена начала "HH:MM", по возрастанию
}
