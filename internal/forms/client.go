package forms

import (
	"strings"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

type AddressForm struct {
	CEP          string `json:"cep" validate:"omitempty,len=8,numeric"`
	Street       string `json:"street" validate:"max=150"`
	Number       string `json:"number" validate:"max=20"`
	Complement   string `json:"complement" validate:"max=100"`
	Neighborhood string `json:"neighborhood" validate:"max=100"`
	City         string `json:"city" validate:"max=100"`
	State        string `json:"state" validate:"omitempty,len=2,alpha"`
}

type ClientForm struct {
	Name    string      `json:"name" validate:"required,max=120"`
	Phone   string      `json:"phone" validate:"required,min=10,max=13,numeric"`
	Email   string      `json:"email" validate:"omitempty,email"`
	CPF     string      `json:"cpf" validate:"omitempty,len=11,numeric"`
	CNPJ    string      `json:"cnpj" validate:"omitempty,len=14,numeric"`
	Notes   string      `json:"notes" validate:"max=500"`
	Address AddressForm `json:"address"`
}

// Normalize remove máscaras antes da validação.
func (f *ClientForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Phone = onlyDigits(f.Phone)
	f.CPF = onlyDigits(f.CPF)
	f.CNPJ = onlyDigits(f.CNPJ)
	f.Address.CEP = onlyDigits(f.Address.CEP)
	f.Address.State = strings.ToUpper(strings.TrimSpace(f.Address.State))
}

// Apply copia o formulário para o documento; contadores de visita ficam de fora.
func (f ClientForm) Apply(c *models.Client) {
	c.Name = f.Name
	c.Phone = f.Phone
	c.Email = f.Email
	c.CPF = f.CPF
	c.CNPJ = f.CNPJ
	c.Notes = f.Notes
	c.Address = models.Address{
		CEP:          f.Address.CEP,
		Street:       f.Address.Street,
		Number:       f.Address.Number,
		Complement:   f.Address.Complement,
		Neighborhood: f.Address.Neighborhood,
		City:         f.Address.City,
		State:        f.Address.State,
	}
}
