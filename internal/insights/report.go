package insights

type WindowView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Report is everything the insights view renders for one range selection.
type Report struct {
	Range       Range              `json:"range"`
	Granularity Granularity        `json:"granularity"`
	Window      WindowView         `json:"window"`
	Series      []Entry            `json:"series"`
	Insights    []string           `json:"insights"`
	Empty       bool               `json:"empty"`
	Overview    Overview           `json:"overview"`
	Symptoms    []SymptomFrequency `json:"symptoms"`
	Trends      []TrendPoint       `json:"trends"`
	Sleep       []SleepPoint       `json:"sleep"`
}

// BuildReport filters entries to the window, aggregates them for the range
// and derives every chart series and observation from that one series.
func BuildReport(entries []Entry, r Range, window Window) Report {
	series := AggregateForRange(Filter(entries, window), r)
	observations := Generate(series, r)

	return Report{
		Range:       r,
		Granularity: r.Granularity(),
		Window:      WindowView{Start: window.StartKey(), End: window.EndKey()},
		Series:      series,
		Insights:    observations,
		Empty:       len(observations) == 0,
		Overview:    BuildOverview(series),
		Symptoms:    SymptomFrequencies(series, defaultSymptomChartLimit),
		Trends:      TrendPoints(series),
		Sleep:       SleepPoints(series),
	}
}

// BuildDailyReport is BuildReport for a user's own records: charts still use
// the aggregated series, but observations, overview and symptom counts come
// from the individual days so counts stay in days for every range.
func BuildDailyReport(entries []Entry, r Range, window Window) Report {
	report := BuildReport(entries, r, window)
	days := sortByDate(Filter(entries, window))
	report.Insights = Generate(days, r)
	report.Empty = len(report.Insights) == 0
	report.Overview = BuildOverview(days)
	report.Symptoms = SymptomFrequencies(days, defaultSymptomChartLimit)
	return report
}
