// Package sla calcula los días transcurridos y restantes de un correo
// respecto del plazo legal de su tipo de solicitud.
package sla

import (
	"errors"
	"time"
)

var (
	ErrInvalidDate   = errors.New("sla: invalid date")
	ErrPlazoInvalido = errors.New("sla: invalid plazo")
)

const dia = 24 * time.Hour

// Resultado son los campos derivados de un correo. Nunca se persisten.
type Resultado struct {
	DiasTranscurridos int `json:"dias_transcurridos"`
	DiasRestantes     int `json:"dias_restantes"`
}

// Vencido indica si el plazo ya se superó (días restantes negativos).
func (r Resultado) Vencido() bool {
	return r.DiasRestantes < 0
}

// DiasVencido devuelve cuántos días lleva vencido (0 si está en plazo).
func (r Resultado) DiasVencido() int {
	if r.DiasRestantes >= 0 {
		return 0
	}
	return -r.DiasRestantes
}

// Calcular es función pura de sus entradas: no lee el reloj.
// El caller debe usar el mismo now para todos los correos de una pasada.
func Calcular(fechaRecepcion time.Time, plazoDias int, now time.Time) (Resultado, error) {
	if fechaRecepcion.IsZero() || now.IsZero() {
		return Resultado{}, ErrInvalidDate
	}
	if plazoDias < 0 {
		return Resultado{}, ErrPlazoInvalido
	}

	transcurridos := 0
	if d := now.Sub(fechaRecepcion); d > 0 {
		transcurridos = int(d / dia)
	}

	return Resultado{
		DiasTranscurridos: transcurridos,
		DiasRestantes:     plazoDias - transcurridos,
	}, nil
}

// Vencimiento devuelve la fecha límite (recepción + plazo en días corridos).
func Vencimiento(fechaRecepcion time.Time, plazoDias int) (time.Time, error) {
	if fechaRecepcion.IsZero() {
		return time.Time{}, ErrInvalidDate
	}
	if plazoDias < 0 {
		return time.Time{}, ErrPlazoInvalido
	}
	return fechaRecepcion.AddDate(0, 0, plazoDias), nil
}
