package timezone

import (
	"fmt"
	"time"
	"unicode"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ===============================
// Formatação pt-BR
// ===============================

var weekdaysPT = [...]string{
	"domingo",
	"segunda-feira",
	"terça-feira",
	"quarta-feira",
	"quinta-feira",
	"sexta-feira",
	"sábado",
}

var monthsPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// ShortTime formata só o horário, ex.: "14:00".
func ShortTime(t time.Time, tz string) string {
	return t.In(Location(tz)).Format("15:04")
}

// ShortDate formata a data no padrão brasileiro, ex.: "31/08/2026".
func ShortDate(t time.Time, tz string) string {
	return t.In(Location(tz)).Format("02/01/2006")
}

// WeekdayTime formata dia da semana + horário, ex.: "segunda-feira, 14:00".
// É o formato usado no contexto entregue ao assistente de voz.
func WeekdayTime(t time.Time, tz string) string {
	local := t.In(Location(tz))
	return fmt.Sprintf("%s, %s", weekdaysPT[local.Weekday()], local.Format("15:04"))
}

// DayLabel devolve o cabeçalho de um grupo da agenda: "Hoje", "Amanhã"
// ou o dia por extenso, ex.: "Segunda-feira, 2 de janeiro".
func DayLabel(day, today time.Time, tz string) string {
	loc := Location(tz)
	d := truncateDay(day.In(loc))
	t := truncateDay(today.In(loc))

	switch {
	case d.Equal(t):
		return "Hoje"
	case d.Equal(t.AddDate(0, 0, 1)):
		return "Amanhã"
	}

	label := fmt.Sprintf("%s, %d de %s", weekdaysPT[d.Weekday()], d.Day(), monthsPT[d.Month()-1])
	r := []rune(label)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// DayKey identifica o dia de um horário para agrupamento na agenda.
func DayKey(t time.Time, tz string) string {
	return t.In(Location(tz)).Format("2006-01-02")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
