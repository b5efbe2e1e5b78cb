package catalog

import "github.com/okian/mentorpath/internal/domain/model"

// Built-in catalog defaults. These keep the service usable with no
// external artifacts; deployments point profiles_file / mappings_file
// at versioned YAML to replace them.

func seedProfiles() []model.ReferenceProfile {
	return []model.ReferenceProfile{
		{
			ID:     "ps-king",
			Name:   "Martin Luther King Jr.",
			Domain: "public_speaking",
			Benchmark: model.MetricVector{
				"voice_modulation":     0.90,
				"pause_timing":         0.95,
				"gesture_coordination": 0.90,
				"emotional_resonance":  0.95,
				"eye_contact":          0.85,
			},
			Biography:    "Orator whose cadence and pause timing remain the benchmark for persuasive speech.",
			Achievements: []string{"I Have a Dream (1963)", "Nobel Peace Prize (1964)"},
			Popularity:   0.9,
		},
		{
			ID:     "ps-obama",
			Name:   "Barack Obama",
			Domain: "public_speaking",
			Benchmark: model.MetricVector{
				"voice_modulation":     0.85,
				"pause_timing":         0.90,
				"gesture_coordination": 0.85,
				"emotional_resonance":  0.90,
				"eye_contact":          0.90,
			},
			Biography:    "Measured delivery and deliberate pacing under pressure.",
			Achievements: []string{"2004 DNC keynote", "Two inaugural addresses"},
			Popularity:   0.75,
		},
		{
			ID:     "ps-winfrey",
			Name:   "Oprah Winfrey",
			Domain: "public_speaking",
			Benchmark: model.MetricVector{
				"voice_modulation":     0.80,
				"pause_timing":         0.85,
				"gesture_coordination": 0.95,
				"emotional_resonance":  0.85,
				"eye_contact":          0.95,
			},
			Biography:    "Audience connection built on eye contact and conversational warmth.",
			Achievements: []string{"25 seasons of live interview broadcasting"},
			Popularity:   0.6,
		},
		{
			ID:     "bx-ali",
			Name:   "Muhammad Ali",
			Domain: "boxing",
			Benchmark: model.MetricVector{
				"footwork_precision": 0.95,
				"punch_technique":    0.90,
				"defensive_movement": 0.90,
				"timing":             0.95,
				"balance":            0.90,
			},
			Biography:    "Footwork and ring timing that redefined heavyweight movement.",
			Achievements: []string{"Three-time lineal heavyweight champion"},
			Popularity:   0.85,
		},
		{
			ID:     "mu-mozart",
			Name:   "Wolfgang Amadeus Mozart",
			Domain: "music",
			Benchmark: model.MetricVector{
				"rhythm_accuracy":    0.98,
				"timing_precision":   0.95,
				"finger_technique":   0.95,
				"musical_expression": 0.95,
				"tempo_control":      0.90,
			},
			Biography:    "Precision and expression treated as a single discipline.",
			Achievements: []string{"600+ works across every contemporary form"},
			Popularity:   0.5,
		},
		{
			ID:     "mu-beethoven",
			Name:   "Ludwig van Beethoven",
			Domain: "music",
			Benchmark: model.MetricVector{
				"rhythm_accuracy":    0.90,
				"timing_precision":   0.85,
				"finger_technique":   0.90,
				"musical_expression": 0.98,
				"tempo_control":      0.85,
			},
			Biography:    "Expression pushed past the instrument's and the era's limits.",
			Achievements: []string{"Nine symphonies", "32 piano sonatas"},
			Popularity:   0.45,
		},
	}
}

func seedMappings() []model.TransferMapping {
	return []model.TransferMapping{
		{
			SourceSkill: "boxing",
			TargetSkill: "public_speaking",
			Components: []model.ComponentMapping{
				{
					SourceComponent: "Footwork",
					TargetComponent: "Stage Presence",
					Strength:        0.85,
					Principle:       "Boxing footwork translates to confident stage movement and positioning.",
					Examples: []string{
						"Maintain balanced stance -> Stand confidently with weight distributed",
						"Quick lateral movement -> Move purposefully across stage",
					},
				},
				{
					SourceComponent: "Timing and Rhythm",
					TargetComponent: "Speech Rhythm",
					Strength:        0.90,
					Principle:       "Boxing timing sense transfers to speech pacing and dramatic pauses.",
					Examples: []string{
						"Reading opponent's rhythm -> Reading audience energy",
						"Creating rhythm disruption -> Using strategic pauses for impact",
					},
				},
				{
					SourceComponent: "Mental Focus",
					TargetComponent: "Audience Engagement",
					Strength:        0.80,
					Principle:       "Boxing mental discipline enhances sustained audience connection.",
					Examples: []string{
						"Maintaining focus under pressure -> Staying composed during tough questions",
						"Reading opponent reactions -> Reading audience body language",
					},
				},
			},
		},
		{
			SourceSkill: "coding",
			TargetSkill: "cooking",
			Components: []model.ComponentMapping{
				{
					SourceComponent: "Logical Structure",
					TargetComponent: "Recipe Organization",
					Strength:        0.90,
					Principle:       "Code organization principles apply to recipe development and meal planning.",
					Examples: []string{
						"Function modularity -> Breaking recipes into components",
						"Error handling -> Troubleshooting cooking problems",
					},
				},
				{
					SourceComponent: "Debugging Skills",
					TargetComponent: "Taste Testing",
					Strength:        0.85,
					Principle:       "Systematic debugging translates to iterative taste refinement.",
					Examples: []string{
						"Isolating bugs -> Identifying specific flavor issues",
						"Testing edge cases -> Trying recipe variations",
					},
				},
				{
					SourceComponent: "Version Control",
					TargetComponent: "Recipe Iteration",
					Strength:        0.75,
					Principle:       "Branching and merging habits support disciplined recipe iteration.",
					Examples: []string{
						"Commit messages -> Documenting recipe changes",
						"Branching -> Trying alternative ingredient combinations",
					},
				},
			},
		},
		{
			SourceSkill: "music",
			TargetSkill: "business",
			Components: []model.ComponentMapping{
				{
					SourceComponent: "Rhythm and Timing",
					TargetComponent: "Market Timing",
					Strength:        0.80,
					Principle:       "Musical timing sense enhances business opportunity recognition.",
					Examples: []string{
						"Feeling the beat -> Sensing market rhythms",
						"Syncopation -> Finding unique market entry points",
					},
				},
				{
					SourceComponent: "Harmony and Arrangement",
					TargetComponent: "Team Collaboration",
					Strength:        0.85,
					Principle:       "Musical harmony principles improve team dynamics and leadership.",
					Examples: []string{
						"Balancing instruments -> Balancing team roles",
						"Ensemble coordination -> Team synchronization",
					},
				},
				{
					SourceComponent: "Improvisation",
					TargetComponent: "Strategic Adaptation",
					Strength:        0.90,
					Principle:       "Musical improvisation skills enhance business agility and problem-solving.",
					Examples: []string{
						"Real-time adaptation -> Responding to market changes",
						"Reading the room -> Adapting pitch to audience",
					},
				},
			},
		},
	}
}
