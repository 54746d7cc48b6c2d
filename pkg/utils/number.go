package utils

import (
	"math"
	"strconv"
	"strings"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// NormalizeCurrencyBR converte um valor monetário no formato brasileiro
// ("R$ 1.234,56") para uma string decimal canônica ("1234.56"). Valores
// que não podem ser interpretados viram "0".
func NormalizeCurrencyBR(value string) string {
	v := strings.TrimSpace(value)
	v = strings.TrimPrefix(v, "R$")
	v = strings.TrimSpace(v)

	// Separador de milhar "." e decimal ","
	v = strings.ReplaceAll(v, ".", "")
	v = strings.ReplaceAll(v, ",", ".")

	if v == "" {
		return "0"
	}

	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return "0"
	}

	return v
}

// ParseIntLoose remove qualquer caractere não numérico antes de converter.
// Campos inteiros do feed chegam com pontos de milhar e sufixos ocasionais.
func ParseIntLoose(value string) int {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return 0
	}

	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}

	return n
}
