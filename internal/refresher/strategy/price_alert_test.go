package strategy

import (
	"testing"

	"portfolio-tracker/internal/entity"
	"portfolio-tracker/pkg/telegram"
	"portfolio-tracker/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestPriceAlertEvaluate(t *testing.T) {
	s := &PriceAlertStrategy{}

	tests := []struct {
		name      string
		holding   entity.Holding
		price     float64
		wantType  telegram.AlertType
		wantLevel float64
	}{
		{
			name:      "target crossed",
			holding:   entity.Holding{TargetPrice: utils.ToPointer(150.0)},
			price:     151,
			wantType:  telegram.AlertAboveTarget,
			wantLevel: 150,
		},
		{
			name:      "exactly at target",
			holding:   entity.Holding{TargetPrice: utils.ToPointer(150.0)},
			price:     150,
			wantType:  telegram.AlertAboveTarget,
			wantLevel: 150,
		},
		{
			name:      "stop breached",
			holding:   entity.Holding{StopPrice: utils.ToPointer(90.0)},
			price:     89.5,
			wantType:  telegram.AlertBelowStop,
			wantLevel: 90,
		},
		{
			name:     "between thresholds",
			holding:  entity.Holding{TargetPrice: utils.ToPointer(150.0), StopPrice: utils.ToPointer(90.0)},
			price:    120,
			wantType: "",
		},
		{
			name: "target wins when both are crossed",
			// Inverted configuration: stop above target.
			holding:   entity.Holding{TargetPrice: utils.ToPointer(100.0), StopPrice: utils.ToPointer(200.0)},
			price:     120,
			wantType:  telegram.AlertAboveTarget,
			wantLevel: 100,
		},
		{
			name:     "no thresholds configured",
			holding:  entity.Holding{},
			price:    120,
			wantType: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotLevel := s.evaluate(&tt.holding, tt.price)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantLevel, gotLevel)
		})
	}
}
