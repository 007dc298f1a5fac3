package plangen

import "fmt"

// FallbackPlan returns the fixed one-week plan used whenever live generation
// cannot produce a valid result. It is deterministic, never touches the
// model, and is parameterized only by the owner identifier and goal distance.
func FallbackPlan(profile UserProfile) Plan {
	workouts := []Workout{
		{
			Day:             1,
			Title:           "Easy Run",
			Type:            "easy_run",
			Description:     "A relaxed run to open the week. Keep the effort conversational and stop while you still feel fresh.",
			Warmup:          strPtr("5 min brisk walk"),
			MainSet:         strPtr("30 min easy running in zone_2_aerobic"),
			Cooldown:        strPtr("5 min walk and light stretching"),
			DurationMinutes: numPtr(40),
			DistanceKm:      numPtr(5),
		},
		{
			Day:             2,
			Title:           "Interval Session",
			Type:            "intervals",
			Description:     "Short repeats at a hard but controlled effort to sharpen leg speed. Jog fully between repeats.",
			Warmup:          strPtr("10 min easy jog with 4 x 20s strides"),
			MainSet:         strPtr("6 x 400m at zone_5_vo2max with 90s jog recovery"),
			Cooldown:        strPtr("10 min easy jog"),
			DurationMinutes: numPtr(45),
			DistanceKm:      numPtr(7),
		},
		{
			Day:             3,
			Title:           "Tempo Run",
			Type:            "tempo_run",
			Description:     "A sustained comfortably-hard block to raise your lactate threshold. Settle into a rhythm you could hold for an hour on race day.",
			Warmup:          strPtr("10 min easy jog"),
			MainSet:         strPtr("20 min at zone_3_tempo"),
			Cooldown:        strPtr("10 min easy jog"),
			DurationMinutes: numPtr(40),
			DistanceKm:      numPtr(7),
		},
		{
			Day:             4,
			Title:           "Recovery Run",
			Type:            "easy_run",
			Description:     "A genuinely easy run to absorb the last two sessions. Slower than feels necessary is exactly right.",
			Warmup:          strPtr("5 min walk"),
			MainSet:         strPtr("25 min at zone_1_recovery"),
			Cooldown:        strPtr("5 min walk"),
			DurationMinutes: numPtr(35),
			DistanceKm:      numPtr(4),
		},
		{
			Day:             5,
			Title:           "Hills and Strength",
			Type:            "strength",
			Description:     "Hill repeats for running-specific power followed by a short strength circuit for durability.",
			Warmup:          strPtr("10 min easy jog to the hill"),
			MainSet:         strPtr("6 x 30s hill repeats, walk-back recovery, then 2 rounds of squats, lunges and planks"),
			Cooldown:        strPtr("10 min easy jog and stretching"),
			DurationMinutes: numPtr(50),
			DistanceKm:      numPtr(5),
		},
		{
			Day:             6,
			Title:           "Rest Day",
			Type:            restType,
			Description:     "Full rest so the week's training can sink in. Hydrate well and get to bed early.",
			Warmup:          strPtr("Gentle mobility if you feel stiff"),
			MainSet:         strPtr("Complete rest or a short walk"),
			Cooldown:        strPtr("Light stretching before bed"),
			DurationMinutes: nil,
			DistanceKm:      nil,
		},
		{
			Day:             7,
			Title:           "Long Run",
			Type:            "long_run",
			Description:     "The cornerstone endurance session. Hold a steady easy effort the whole way and practice drinking on the move.",
			Warmup:          strPtr("5 min brisk walk"),
			MainSet:         strPtr("60 min at zone_2_aerobic"),
			Cooldown:        strPtr("5 min walk and full stretching routine"),
			DurationMinutes: numPtr(70),
			DistanceKm:      numPtr(10),
		},
	}

	for i := range workouts {
		workouts[i].UserID = profile.UserID
	}

	return Plan{
		Overview: fmt.Sprintf("Your personalized %s training plan (fallback plan)", profile.GoalDistance),
		Workouts: workouts,
	}
}

func strPtr(s string) *string { return &s }

func numPtr(n float64) *float64 { return &n }
