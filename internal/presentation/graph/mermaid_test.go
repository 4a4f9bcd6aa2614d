package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/cmdbot/internal/presentation/graph"
	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/trigger"
	"github.com/stretchr/testify/assert"
)

var bindings = []trigger.BindingInfo{
	{ID: 0, Trigger: "driver.left_bumper", Mode: "while-true", Action: "cone_leds", Requirements: []string{"leds"}},
	{ID: 1, Trigger: "board.blue_upper", Mode: "on-true", Action: "open_grabber", Requirements: []string{"grabber"}},
	{ID: 2, Trigger: "board.button(3)", Mode: "on-true", Action: "arm_to(60.0)", Requirements: []string{"arm"}},
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		snapshot    *domain.Snapshot
		contains    []string
		notContains []string
	}{
		{
			name: "Shapes and edges",
			contains: []string{
				"graph LR",
				`t_driver_left_bumper[/"driver.left_bumper"/]`,
				`a0_cone_leds["cone_leds"]`,
				`s_leds[["leds"]]`,
				`t_driver_left_bumper -. "while-true" .-> a0_cone_leds`,
				`t_board_blue_upper -- "on-true" --> a1_open_grabber`,
				"a1_open_grabber --> s_grabber",
				`t_board_button_3_[/"board.button(3)"/]`,
				`a2_arm_to_60_0_["arm_to(60.0)"]`,
			},
			notContains: []string{"classDef"},
		},
		{
			name:     "Busy overlay",
			snapshot: &domain.Snapshot{Owners: map[string]string{"arm": "arm_to(60.0)"}},
			contains: []string{
				"classDef busy",
				"class s_arm busy;",
			},
			notContains: []string{"class s_leds busy;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(bindings, tt.snapshot)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_DeclaresSubsystemsOnce(t *testing.T) {
	twice := append(bindings, trigger.BindingInfo{ID: 3, Trigger: "board.blue_lower", Mode: "on-true", Action: "close_grabber", Requirements: []string{"grabber"}})
	got := graph.GenerateMermaid(twice, nil)
	assert.Equal(t, 1, strings.Count(got, `s_grabber[["grabber"]]`))
}
