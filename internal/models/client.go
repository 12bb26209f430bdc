package models

// Cliente simples, sem login; referenciado pelos agendamentos via ID
type Client struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
