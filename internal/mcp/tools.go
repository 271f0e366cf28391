package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"migmap/internal/atlas"
	"migmap/internal/flows"
)

type noInput struct{}

type countryInput struct {
	Code string `json:"code" jsonschema:"Numeric country code (250) or ISO alpha-3 code (FRA)"`
}

type yearInput struct {
	Year int `json:"year" jsonschema:"Migration year, e.g. 2020"`
}

type anamorphicInput struct {
	Mode           string `json:"mode,omitempty" jsonschema:"Statistic to show. Default: evolution"`
	Year           int    `json:"year" jsonschema:"Migration year used by the absolute and percentage modes"`
	EvolutionRange string `json:"evolution_range,omitempty" jsonschema:"Checkpoint span START-END used by the evolution mode. Default: 1990-2020"`
}

type partnersInput struct {
	Code      string `json:"code" jsonschema:"Numeric country code (250) or ISO alpha-3 code (FRA)"`
	Year      int    `json:"year" jsonschema:"Migration year"`
	Direction string `json:"direction,omitempty" jsonschema:"inflow ranks origins and outflow ranks destinations. Default: auto"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of partners. Default: 10"`
}

type timeseriesInput struct {
	Code      string `json:"code" jsonschema:"Numeric country code (250) or ISO alpha-3 code (FRA)"`
	Direction string `json:"direction,omitempty" jsonschema:"inflow or outflow. Default: auto"`
	Years     []int  `json:"years,omitempty" jsonschema:"Years to include. Default: the five-yearly checkpoints 1990 to 2020"`
}

type summaryInput struct {
	Code           string `json:"code" jsonschema:"Numeric country code (250) or ISO alpha-3 code (FRA)"`
	Year           int    `json:"year" jsonschema:"Migration year"`
	EvolutionRange string `json:"evolution_range,omitempty" jsonschema:"Checkpoint span START-END. Default: 1990-2020"`
}

type renderInput struct {
	Year           int    `json:"year,omitempty" jsonschema:"Selected year. Default: the first year with records"`
	View           string `json:"view,omitempty" jsonschema:"Map layout. Default: choropleth"`
	Mode           string `json:"mode,omitempty" jsonschema:"Anamorphic statistic. Default: evolution"`
	EvolutionRange string `json:"evolution_range,omitempty" jsonschema:"Checkpoint span START-END. Default: 1990-2020"`
	Country        string `json:"country,omitempty" jsonschema:"Selected country, numeric or alpha-3 code"`
}

func modeEnum() []any {
	var out []any
	for _, m := range atlas.Modes() {
		out = append(out, string(m))
	}
	return out
}

var directionEnum = []any{string(flows.Inflow), string(flows.Outflow), string(flows.DirectionAuto)}

// addTool registers a read-only tool whose handler returns a JSON-serializable result.
// enums restricts string properties to the given values.
func addTool[In any](s *Server, name, description string, enums map[string][]any, h func(In) (interface{}, error)) {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		panic(fmt.Sprintf("input schema for %s: %v", name, err))
	}
	for prop, values := range enums {
		schema.Properties[prop].Enum = values
	}

	tool := &sdk.Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
		Annotations: &sdk.ToolAnnotations{ReadOnlyHint: true},
	}
	sdk.AddTool(s.server, tool, func(ctx context.Context, req *sdk.CallToolRequest, in In) (*sdk.CallToolResult, any, error) {
		start := time.Now()
		data, err := h(in)
		if err != nil {
			log.Warn().Err(err).Str("tool", name).Msg("Tool call failed")
			return nil, nil, err
		}
		log.Debug().Str("tool", name).Dur("elapsed", time.Since(start)).Msg("Tool call completed")
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: s.formatResult(data)}},
		}, nil, nil
	})
}

func (s *Server) registerTools() {
	addTool(s, "get_dataset_info",
		"Describe the loaded dataset: table sizes, available years, evolution ranges and the per-source ingestion reports (accepted, rejected and skipped rows). Call this first to learn which years can be queried.",
		nil, func(noInput) (interface{}, error) { return s.handleGetDatasetInfo() })

	addTool(s, "list_years",
		"List the years that have migration records and the evolution ranges that can be requested.",
		nil, func(noInput) (interface{}, error) { return s.handleListYears() })

	addTool(s, "lookup_country",
		"Resolve a numeric or ISO alpha-3 country code to its canonical code and display name.",
		nil, func(in countryInput) (interface{}, error) { return s.handleLookupCountry(in.Code) })

	addTool(s, "classify_choropleth",
		"Classify every country by its foreign-born share of the population in a year into 5 quantile categories, with outliers, zero and indeterminate (share above 100%) countries flagged separately.",
		nil, func(in yearInput) (interface{}, error) { return s.handleClassifyChoropleth(in.Year) })

	addTool(s, "classify_anamorphic",
		"Classify countries for the proportional-symbol map. Modes: 'absolute' (migrant volume), 'percentage' (foreign-born share) and 'evolution' (change in share over a checkpoint range, on a diverging palette). Each country gets a color and a symbol size.",
		map[string][]any{"mode": modeEnum()},
		func(in anamorphicInput) (interface{}, error) {
			return s.handleClassifyAnamorphic(in.Mode, in.Year, in.EvolutionRange)
		})

	addTool(s, "country_top_partners",
		"Rank the partner countries of a country in a year: the origins of its immigrants (inflow) or the destinations of its emigrants (outflow). Shares are relative to the returned partners.",
		map[string][]any{"direction": directionEnum},
		func(in partnersInput) (interface{}, error) {
			return s.handleCountryTopPartners(in.Code, in.Year, in.Direction, in.Limit)
		})

	addTool(s, "country_timeseries",
		"Return the total migrant flow of a country over time, in millions.",
		map[string][]any{"direction": directionEnum},
		func(in timeseriesInput) (interface{}, error) {
			return s.handleCountryTimeseries(in.Code, in.Direction, in.Years)
		})

	addTool(s, "country_summary",
		"Summarize a country for a year: foreign-born share, migrant volume, population and evolution over a checkpoint range.",
		nil, func(in summaryInput) (interface{}, error) {
			return s.handleCountrySummary(in.Code, in.Year, in.EvolutionRange)
		})

	addTool(s, "render_view",
		"Compute everything needed to draw one map state: the classified map and, when a country is selected, its partners, timeseries and summary. Unset fields take their initial values.",
		map[string][]any{
			"view": {string(atlas.ViewChoropleth), string(atlas.ViewAnamorphic)},
			"mode": modeEnum(),
		},
		func(in renderInput) (interface{}, error) { return s.handleRenderView(in) })
}
