package plan

import "github.com/omarhani/rafiq/internal/models"

// Philosophy is the plan's guiding principles, shown on the home screen.
type Philosophy struct {
	Title      string   `json:"title"`
	Principles []string `json:"principles"`
}

func DefaultPhilosophy() Philosophy {
	return Philosophy{
		Title: "Plan philosophy",
		Principles: []string{
			"No pressure: every mission is short and clear",
			"Your wellbeing comes first: any fatigue means an honorable pause",
			"Tangible progress: every mission is a real step forward",
			"New material first, following your lesson days",
			"A successful day = 60-70% of the plan",
		},
	}
}

// Seed returns the default hard-coded curriculum used when no persisted
// snapshot exists yet. A later cloud pull may fully overwrite it.
func Seed() []models.Subject {
	return []models.Subject{
		{
			ID:   "english",
			Name: "English",
			Icon: "📚",
			Theme: models.Theme{
				Primary:   "#10b981",
				Gradient:  "from-emerald-900 via-slate-900 to-slate-950",
				Scientist: "Shakespeare",
			},
			LessonDays:  []string{"Saturday"},
			Containment: models.ContainmentFlat,
			Missions: []models.Mission{
				{ID: "en-m1", Title: "Vocabulary of the first two lessons", Content: "Memorize the words + pronunciation", Duration: "30 min", Method: "Link each word to an image or situation", Outcome: "An easy, unintimidating start", Links: &models.MissionLinks{Notebook: "#", Questions: "#"}},
				{ID: "en-m2", Title: "Vocabulary drills", Content: "MCQ + sentences", Duration: "20 min", Method: "Consolidation, not memorization", Outcome: "Confirm understanding", Links: &models.MissionLinks{Notebook: "#", Questions: "#"}},
				{ID: "en-m3", Title: "Unit grammar", Content: "The general idea + examples", Duration: "35 min", Method: "Mind map", Outcome: "A clear grasp of the rule", Links: &models.MissionLinks{Notebook: "#", Questions: "#"}},
				{ID: "en-m4", Title: "Grammar drills", Content: "Intensive exercises", Duration: "25 min", Method: "Spot the mistakes", Outcome: "Mastery in practice", Links: &models.MissionLinks{Notebook: "#", Questions: "#"}},
				{ID: "en-m5", Title: "The English story", Content: "The assigned chapter", Duration: "30 min", Method: "Read it as a story, not a textbook", Outcome: "Enjoy the plot", Links: &models.MissionLinks{Notebook: "#", Questions: "#"}},
			},
		},
		{
			ID:   "arabic",
			Name: "Arabic (grammar)",
			Icon: "✒️",
			Theme: models.Theme{
				Primary:   "#f59e0b",
				Gradient:  "from-amber-900 via-slate-900 to-slate-950",
				Scientist: "Naguib Mahfouz",
			},
			LessonDays:  []string{"Tuesday"},
			Containment: models.ContainmentUnitized,
			Units: []models.Unit{
				{
					Name: "Unit two",
					Missions: []models.Mission{
						{ID: "ar-u2-m1", Title: "Active/passive participle and intensive forms", Content: "Derived nouns", Duration: "30 min", Outcome: "Master the derivations"},
						{ID: "ar-u2-m2", Title: "Comparative forms, instrument nouns, time and place nouns", Content: "Word formation", Duration: "30 min", Outcome: "Understand the patterns"},
						{ID: "ar-u2-m3", Title: "Verbal nouns", Content: "Turning a verb into its noun", Duration: "25 min", Outcome: "Master the verbal nouns"},
						{ID: "ar-u2-m4", Title: "Manner, instance, shortened, extended, defective, passive", Content: "Comprehensive review", Duration: "35 min", Outcome: "Your work is solid now"},
					},
				},
				{
					Name: "Unit four",
					Missions: []models.Mission{
						{ID: "ar-u4-m1", Title: "Direct object and adverbial object", Content: "The objects", Duration: "30 min", Outcome: "Understand the objects"},
						{ID: "ar-u4-m2", Title: "Absolute, causative and accompanying objects", Content: "Object kinds", Duration: "30 min", Outcome: "Tell them apart"},
						{ID: "ar-u4-m3", Title: "Circumstantial accusative and specification", Content: "The difference between them", Duration: "25 min", Outcome: "Master both"},
						{ID: "ar-u4-m4", Title: "Exception and the five nouns", Content: "Advanced styles", Duration: "30 min", Outcome: "Understand the styles"},
					},
				},
				{
					Name: "Unit six",
					Missions: []models.Mission{
						{ID: "ar-u6-m1", Title: "Kam and its kinds, prepositions", Content: "The particles", Duration: "30 min", Outcome: "Understand the particles"},
						{ID: "ar-u6-m2", Title: "The vocative style", Content: "Vocative and its kinds", Duration: "20 min", Outcome: "Master the vocative"},
						{ID: "ar-u6-m3", Title: "Kinds of ma, man and la", Content: "Distinguishing the particles", Duration: "25 min", Outcome: "Understand the differences"},
					},
				},
				{
					Name: "Unit seven",
					Missions: []models.Mission{
						{ID: "ar-u7-m1", Title: "Diptotes and complements", Content: "Advanced rules", Duration: "30 min", Outcome: "Understand the diptote"},
						{ID: "ar-u7-m2", Title: "Praise, blame, specialization, exclamation", Content: "The styles", Duration: "30 min", Outcome: "Master the styles"},
						{ID: "ar-u7-m3", Title: "Adjective, conjunction, emphasis, apposition", Content: "The followers", Duration: "35 min", Outcome: "Understand the followers"},
						{ID: "ar-u7-m4", Title: "Appendices, dictionary lookup, verb nouns", Content: "The complements", Duration: "25 min", Outcome: "Finish the syllabus"},
					},
				},
			},
		},
		{
			ID:   "chemistry",
			Name: "Chemistry",
			Icon: "🧪",
			Theme: models.Theme{
				Primary:   "#3b82f6",
				Gradient:  "from-blue-900 via-slate-900 to-slate-950",
				Scientist: "Marie Curie",
			},
			LessonDays:  []string{"Sunday"},
			Containment: models.ContainmentFlat,
			Missions: []models.Mission{
				{ID: "ch-m1", Title: "Review lesson one", Content: "Chapter four, lesson 1", Duration: "25 min", Outcome: "Understand the concepts"},
				{ID: "ch-m2", Title: "Solve lesson one", Content: "Practical exercises", Duration: "20 min", Outcome: "Lock in the material"},
				{ID: "ch-m3", Title: "Review lesson two", Content: "Chapter four, lesson 2", Duration: "25 min", Outcome: "Understand the concepts"},
				{ID: "ch-m4", Title: "Solve lesson two", Content: "Practical exercises", Duration: "20 min", Outcome: "Lock in the material"},
				{ID: "ch-m5", Title: "Review lesson three", Content: "Chapter four, lesson 3", Duration: "25 min", Outcome: "Understand the concepts"},
				{ID: "ch-m6", Title: "Solve lesson three", Content: "Practical exercises", Duration: "20 min", Outcome: "Lock in the material"},
				{ID: "ch-m7", Title: "Review lesson four", Content: "Chapter four, lesson 4", Duration: "25 min", Outcome: "Understand the concepts"},
				{ID: "ch-m8", Title: "Solve lesson four", Content: "Practical exercises", Duration: "20 min", Outcome: "Lock in the material"},
			},
		},
		{
			ID:   "physics",
			Name: "Physics",
			Icon: "⚡",
			Theme: models.Theme{
				Primary:   "#ec4899",
				Gradient:  "from-pink-900 via-slate-900 to-slate-950",
				Scientist: "Einstein",
			},
			LessonDays:  []string{"Wednesday", "Friday"},
			Containment: models.ContainmentSectioned,
			Sections: []models.Section{
				{
					Name: "Chapter three",
					Missions: []models.Mission{
						{ID: "ph-s3-m1", Title: "Faraday's law", Content: "Electromagnetic induction", Duration: "30 min", Outcome: "Understand the law"},
						{ID: "ph-s3-m2", Title: "Faraday drills", Content: "Practical exercises", Duration: "25 min", Outcome: "Master the application"},
						{ID: "ph-s3-m3", Title: "Self and mutual induction", Content: "Kinds of induction", Duration: "30 min", Outcome: "Understand the difference"},
						{ID: "ph-s3-m4", Title: "Induction drills", Content: "Assorted problems", Duration: "25 min", Outcome: "Master the solving"},
						{ID: "ph-s3-m5", Title: "EMF of a straight wire", Content: "Electromotive force", Duration: "20 min", Outcome: "Understand the concept"},
						{ID: "ph-s3-m6", Title: "Wire drills", Content: "Applications", Duration: "20 min", Outcome: "Own the solution"},
						{ID: "ph-s3-m7", Title: "Dynamo, motor, transformer", Content: "Electrical machines", Duration: "30 min", Outcome: "Understand the machines"},
						{ID: "ph-s3-m8", Title: "Machine drills", Content: "Comprehensive problems", Duration: "25 min", Outcome: "Full mastery"},
					},
				},
				{
					Name: "Chapter four",
					Missions: []models.Mission{
						{ID: "ph-s4-m1", Title: "Chapter four review", Content: "Next week", Duration: "soon", Outcome: "Get ready for the review"},
					},
				},
			},
		},
		{
			ID:   "math",
			Name: "Math (calculus)",
			Icon: "📐",
			Theme: models.Theme{
				Primary:   "#a855f7",
				Gradient:  "from-purple-900 via-slate-900 to-slate-950",
				Scientist: "Al-Khwarizmi",
			},
			LessonDays:  []string{"Monday", "Thursday"},
			Containment: models.ContainmentFlat,
			Missions: []models.Mission{
				{ID: "math-m1", Title: "Functions and inequalities", Content: "Review the basics", Duration: "30 min", Outcome: "Understand the functions"},
				{ID: "math-m2", Title: "Reading curves", Content: "Visual analysis", Duration: "25 min", Outcome: "Read them correctly"},
				{ID: "math-m3", Title: "Critical and inflection point conditions", Content: "Theorems", Duration: "30 min", Outcome: "Understand the conditions"},
				{ID: "math-m4", Title: "Reading curves (applied)", Content: "Hands-on practice", Duration: "25 min", Outcome: "Master the application"},
				{ID: "math-m5", Title: "Past exams, chapter two", Content: "Previous years", Duration: "40 min", Outcome: "Fully exam-ready"},
			},
		},
	}
}
