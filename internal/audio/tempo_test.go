package audio

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/mederr"
)

func TestValidateTempoFactor(t *testing.T) {
	for _, factor := range []float64{0.5, 0.7, 1.0, 1.25, 1.5} {
		if err := ValidateTempoFactor(factor); err != nil {
			t.Errorf("factor %.2f should be accepted: %v", factor, err)
		}
	}
	for _, factor := range []float64{0.0, 0.4, 1.51, 2.0, -1.0} {
		err := ValidateTempoFactor(factor)
		if err == nil {
			t.Errorf("factor %.2f should be rejected", factor)
			continue
		}
		var tempoErr *mederr.UnsupportedTempoFactorError
		if !errors.As(err, &tempoErr) {
			t.Errorf("factor %.2f: error %T, want UnsupportedTempoFactorError", factor, err)
			continue
		}
		if tempoErr.Factor != factor {
			t.Errorf("error cites factor %.2f, want %.2f", tempoErr.Factor, factor)
		}
	}
}

func TestIsNeutral(t *testing.T) {
	if !IsNeutral(1.0) {
		t.Error("1.0 must be neutral")
	}
	if !IsNeutral(1.0004) {
		t.Error("1.0004 is within the neutral epsilon")
	}
	if IsNeutral(1.2) || IsNeutral(0.8) {
		t.Error("clearly non-neutral factors reported as neutral")
	}
}

func TestExpectedAdjustedDuration(t *testing.T) {
	tests := []struct {
		in, factor, want float64
	}{
		{10, 1.25, 8},
		{10, 0.5, 20},
		{6, 1.0, 6},
	}
	for _, tt := range tests {
		if got := ExpectedAdjustedDuration(tt.in, tt.factor); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ExpectedAdjustedDuration(%.2f, %.2f) = %.4f, want %.4f",
				tt.in, tt.factor, got, tt.want)
		}
	}
}
