package insights

// Numeric scales used by the trend chart. Unknown values fall back to the
// neutral point of each scale.

func MoodScore(mood string) int {
	switch mood {
	case "great":
		return 5
	case "good":
		return 4
	case "okay":
		return 3
	case "low":
		return 2
	case "irritable":
		return 1
	default:
		return 3
	}
}

func EnergyScore(energy string) int {
	switch energy {
	case "high":
		return 5
	case "medium":
		return 3
	case "low":
		return 1
	default:
		return 3
	}
}

func FlowScore(flow string) int {
	switch flow {
	case "heavy":
		return 5
	case "medium":
		return 4
	case "light":
		return 3
	case "spotting":
		return 2
	default:
		return 1
	}
}

func ScoreLabel(score float64) string {
	switch {
	case score >= 4.5:
		return "Great"
	case score >= 3.5:
		return "Good"
	case score >= 2.5:
		return "Okay"
	case score >= 1.5:
		return "Low"
	default:
		return "Poor"
	}
}

func FlowLabel(score int) string {
	switch score {
	case 5:
		return "Heavy"
	case 4:
		return "Medium"
	case 3:
		return "Light"
	case 2:
		return "Spotting"
	default:
		return "None"
	}
}
