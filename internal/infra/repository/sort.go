package repository

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// Ordem das assinaturas: nome para cadastros, data decrescente para agenda
// e financeiro.

func sortClients(list []models.Client) {
	sort.SliceStable(list, func(i, j int) bool {
		return byName(list[i].Name, list[j].Name, list[i].ID, list[j].ID)
	})
}

func sortServices(list []models.Service) {
	sort.SliceStable(list, func(i, j int) bool {
		return byName(list[i].Name, list[j].Name, list[i].ID, list[j].ID)
	})
}

func sortStaff(list []models.Staff) {
	sort.SliceStable(list, func(i, j int) bool {
		return byName(list[i].Name, list[j].Name, list[i].ID, list[j].ID)
	})
}

func sortAppointments(list []models.Appointment) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		if list[i].Time != list[j].Time {
			return list[i].Time > list[j].Time
		}
		return list[i].ID < list[j].ID
	})
}

func sortRecords(list []models.FinancialRecord) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

func byName(a, b, idA, idB string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return idA < idB
}
