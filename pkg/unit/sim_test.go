package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwaudio/fwctl-go/pkg/avc"
	"github.com/fwaudio/fwctl-go/pkg/ctl"
)

func TestSimulationLoadsEveryKind(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			sim := NewSimulation(k, testBase)
			assert.Equal(t, k.IsAVC(), sim.FCP != nil)
			assert.Equal(t, k.IsAVC(), sim.Notifier() == nil)

			d := load(t, k, sim.Deps(testBase))
			assert.NotEmpty(t, d.Card().Elements())

			if reg, ok := mustModel(t, k, sim).(Registrar); ok {
				_, end := reg.Registry().Span()
				assert.LessOrEqual(t, end, uint64(SimWindow))
			}
		})
	}
}

func TestSimulationScratchampMute(t *testing.T) {
	sim := NewSimulation(KindScratchamp, 0)
	d := load(t, KindScratchamp, sim.Deps(0))

	require.NoError(t, d.Set(outputVolumeID, ctl.IntValue(0, avc.CtlValueMute, 0, 0, 0, 0)))
	assert.Equal(t, avc.NegInfinity, sim.FCP.Volume(1, 1))
}

func mustModel(t *testing.T, k Kind, sim *Simulation) ctl.Model {
	t.Helper()
	m, err := New(k, sim.Deps(testBase))
	require.NoError(t, err)
	return m
}
