package services

import (
	"fmt"

	"bilig/internal/shared/biztime"
)

// OrderNumberGenerator produces human-readable order numbers.
type OrderNumberGenerator interface {
	Generate(prefix string) string
}

type DefaultOrderNumberGenerator struct{}

func NewOrderNumberGenerator() OrderNumberGenerator {
	return &DefaultOrderNumberGenerator{}
}

// Generate returns "<prefix><timestamp><6-digit entropy>", e.g. ORD20260901120000123456.
func (g *DefaultOrderNumberGenerator) Generate(prefix string) string {
	now := biztime.NowUTC()
	return fmt.Sprintf("%s%s%06d",
		prefix,
		now.Format("20060102150405"),
		now.Nanosecond()%1000000,
	)
}
