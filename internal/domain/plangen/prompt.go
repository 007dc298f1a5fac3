package plangen

import (
	"fmt"
	"strings"
)

const (
	planWeeks       = 2
	sessionsPerWeek = 6
	totalWorkouts   = planWeeks * sessionsPerWeek

	defaultPersona = "Balanced"
	restType       = "rest"
)

type paceZone struct {
	name        string
	description string
	pace        string
	heartRate   string
	rpe         string
}

// The zone table is fixed coaching reference material; the model derives
// concrete paces from the runner's estimated 5K race pace.
var paceZones = []paceZone{
	{"zone_1_recovery", "Very easy, conversational", "5K_pace + 90-120 seconds", "65-75% max HR", "2-3/10"},
	{"zone_2_aerobic", "Easy, build aerobic base", "5K_pace + 60-90 seconds", "75-85% max HR", "4-5/10"},
	{"zone_3_tempo", "Comfortably hard, tempo pace", "5K_pace + 15-30 seconds", "85-90% max HR", "6-7/10"},
	{"zone_4_threshold", "Hard, lactate threshold", "5K_pace + 0-15 seconds", "90-95% max HR", "7-8/10"},
	{"zone_5_vo2max", "Very hard, VO2 max pace", "5K_pace - 5-10 seconds", "95-100% max HR", "9-10/10"},
}

// Personas matching an in-house coaching philosophy inline its full text;
// any other persona is still quoted verbatim as the coaching directive.
var coachPhilosophies = []struct {
	keyword string
	text    string
}{
	{"gentle", "This philosophy is for those new to running. It focuses on building a consistent habit and enjoying the process. The plan will gradually increase in duration and intensity, with a mix of running and walking to ease you into it. The key is to listen to your body and not push too hard too soon."},
	{"balanced", "This philosophy is for runners who want to improve but also maintain a healthy balance with other aspects of life. The plan will include a variety of runs to keep things interesting, with a focus on positive reinforcement and celebrating small wins. It's about making running a sustainable and enjoyable part of your lifestyle."},
	{"smarter", "This philosophy is for the data-driven runner who wants to maximize their performance efficiently. The plan will focus on quality over quantity, with specific workouts designed to improve your pace and endurance. It will incorporate principles of polarized training, with a mix of high-intensity and low-intensity sessions."},
	{"performance", "This philosophy is for the experienced runner who is ready to push their limits and achieve a new personal best. The plan will be challenging and demanding, with a high volume of running and intense workouts. It's designed to get you to the starting line feeling strong, confident, and ready to race."},
}

// buildPrompt renders the model instruction for a profile. It is pure and
// deterministic for identical input and never mutates the profile.
func buildPrompt(profile UserProfile) string {
	persona := strings.TrimSpace(profile.CoachPersona)
	if persona == "" {
		persona = defaultPersona
	}

	var b strings.Builder
	b.WriteString("You are an expert running coach generating a personalized, day-by-day training plan for a runner. Adhere strictly to every rule below.\n\n")

	b.WriteString("Runner profile:\n")
	fmt.Fprintf(&b, "- Goal distance: %s\n", profile.GoalDistance)
	if strings.TrimSpace(profile.GoalTime) != "" {
		fmt.Fprintf(&b, "- Goal time: %s\n", profile.GoalTime)
	}
	fmt.Fprintf(&b, "- Fitness level: %s\n", profile.FitnessLevel)
	fmt.Fprintf(&b, "- Age: %s\n", profile.Age)
	fmt.Fprintf(&b, "- Sex: %s\n", profile.Sex)

	fmt.Fprintf(&b, "\nCoaching philosophy: coach this runner in the %q style.\n", persona)
	if text := philosophyFor(persona); text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}

	b.WriteString("\nPace zones (derive concrete paces from the runner's estimated 5K race pace):\n")
	for _, zone := range paceZones {
		fmt.Fprintf(&b, "- %s: %s; pace %s; %s; RPE %s\n", zone.name, zone.description, zone.pace, zone.heartRate, zone.rpe)
	}

	b.WriteString("\nOutput format:\n")
	b.WriteString("Return a single JSON object with exactly two top-level keys:\n")
	b.WriteString("- \"plan_overview\": string, a short motivating summary of the plan.\n")
	b.WriteString("- \"workouts\": array of workout objects.\n\n")
	b.WriteString("Each workout object carries exactly these nine fields:\n")
	b.WriteString("- \"day\": number, sequential day of the plan starting at 1.\n")
	b.WriteString("- \"title\": string.\n")
	b.WriteString("- \"type\": string, one of: easy_run, intervals, tempo_run, long_run, strength, cross_train, rest.\n")
	b.WriteString("- \"description\": string.\n")
	b.WriteString("- \"warmup\": string or null.\n")
	b.WriteString("- \"main_set\": string or null.\n")
	b.WriteString("- \"cooldown\": string or null.\n")
	b.WriteString("- \"duration_minutes\": number or null.\n")
	b.WriteString("- \"distance_km\": number or null.\n\n")
	fmt.Fprintf(&b, "The plan covers %d weeks with %d sessions per week: exactly %d workout objects.\n", planWeeks, sessionsPerWeek, totalWorkouts)
	b.WriteString("Use kilometers for all distances and minutes per kilometer for all paces.\n")
	fmt.Fprintf(&b, "Rest days use type %q with duration_minutes and distance_km set to null.\n", restType)
	b.WriteString("Respond with JSON only: no prose, no markdown fences.")

	return b.String()
}

func philosophyFor(persona string) string {
	needle := strings.ToLower(strings.TrimSpace(persona))
	if needle == "" {
		return ""
	}
	for _, philosophy := range coachPhilosophies {
		if strings.Contains(needle, philosophy.keyword) {
			return philosophy.text
		}
	}
	return ""
}
