package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"migmap/internal/flows"
	"migmap/internal/stats"
)

func TestViewState_Transitions(t *testing.T) {
	d := loadFixture(t)
	s0 := d.InitialState()

	assert.Equal(t, 1990, s0.Year)
	assert.Equal(t, ViewChoropleth, s0.View)
	assert.Equal(t, ModeEvolution, s0.Mode)
	assert.Equal(t, stats.FullRange, s0.EvolutionRange)

	s1 := s0.WithYear(2020).ToggleView().ToggleCountry("250")
	assert.Equal(t, 1990, s0.Year, "transitions do not mutate the original state")
	assert.Equal(t, ViewAnamorphic, s1.View)
	assert.Equal(t, "250", s1.Country)

	assert.Empty(t, s1.ToggleCountry("250").Country, "selecting the same country again clears it")
	assert.Equal(t, "276", s1.ToggleCountry("276").Country)
	assert.Equal(t, ViewChoropleth, s1.ToggleView().View)
}

func TestRender(t *testing.T) {
	d := loadFixture(t)
	state := d.InitialState().WithYear(2020)

	snap, err := d.Render(state)
	require.NoError(t, err)
	assert.Equal(t, ViewChoropleth, snap.Map.View)
	assert.Nil(t, snap.Partners)

	snap, err = d.Render(state.ToggleView().WithMode(ModeAbsolute).ToggleCountry("250"))
	require.NoError(t, err)
	assert.Equal(t, ViewAnamorphic, snap.Map.View)
	assert.Equal(t, ModeAbsolute, snap.Map.Mode)
	require.NotNil(t, snap.Partners)
	require.NotNil(t, snap.Timeseries)
	require.NotNil(t, snap.Summary)
	assert.Equal(t, flows.Inflow, snap.Partners.Direction)
	assert.Len(t, snap.Partners.Partners, 2)
}

func TestRender_InvalidState(t *testing.T) {
	d := loadFixture(t)
	state := d.InitialState().ToggleView().WithEvolutionRange(stats.YearRange{Start: 1991, End: 2020})

	_, err := d.Render(state)
	assert.ErrorIs(t, err, stats.ErrInvalidRange)

	_, err = d.Render(d.InitialState().ToggleCountry("999"))
	assert.ErrorIs(t, err, ErrUnknownCountry)
}
