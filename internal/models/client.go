package models

import "time"

// Address é o endereço opcional do cliente, preenchido pela busca de CEP.
type Address struct {
	CEP          string `gorm:"size:9" json:"cep,omitempty"`
	Street       string `gorm:"size:150" json:"street,omitempty"`
	Number       string `gorm:"size:20" json:"number,omitempty"`
	Complement   string `gorm:"size:100" json:"complement,omitempty"`
	Neighborhood string `gorm:"size:100" json:"neighborhood,omitempty"`
	City         string `gorm:"size:100" json:"city,omitempty"`
	State        string `gorm:"size:2" json:"state,omitempty"`
}

// Client guarda o contador de visitas desnormalizado. TotalVisits deve
// refletir os agendamentos não cancelados do cliente.
type Client struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name  string `gorm:"size:120;not null;index" json:"name"`
	Phone string `gorm:"size:20;not null" json:"phone"`
	Email string `gorm:"size:120" json:"email,omitempty"`
	CPF   string `gorm:"size:14" json:"cpf,omitempty"`
	CNPJ  string `gorm:"size:18" json:"cnpj,omitempty"`
	Notes string `gorm:"size:500" json:"notes,omitempty"`

	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	TotalVisits int     `gorm:"not null;default:0" json:"total_visits"`
	LastVisit   *string `gorm:"size:10" json:"last_visit,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
