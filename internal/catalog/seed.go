package catalog

// Wire field names understood by the scoring service.
const (
	FieldGender              = "gender"
	FieldAge                 = "age"
	FieldAcademicPressure    = "academic_pressure"
	FieldStudySatisfaction   = "study_satisfaction"
	FieldSleepDuration       = "sleep_duration"
	FieldDietaryHabits       = "dietary_habits"
	FieldSuicidalThoughts    = "suicidal_thoughts"
	FieldWorkStudyHours      = "work_study_hours"
	FieldFinancialStress     = "financial_stress"
	FieldFamilyMentalHistory = "family_mental_history"
)

// Title is the name of the questionnaire.
const Title = "Student Mental Health Assessment"

var seedQuestions = []Question{
	{ID: 1, Text: "What is your gender?", Kind: KindChoice, Options: []string{"Male", "Female", "Others"}, Field: FieldGender},
	{ID: 2, Text: "What is your age?", Kind: KindChoice, Options: []string{"17-25", "26-35", "36-45", "46-55"}, Field: FieldAge},
	{ID: 3, Text: "Academic pressure on a scale of 0-5?", Kind: KindChoice, Options: []string{"0", "1", "2", "3", "4", "5"}, Field: FieldAcademicPressure},
	{ID: 4, Text: "Study Satisfaction (1-10)", Kind: KindScale, Min: 1, Max: 10, Field: FieldStudySatisfaction},
	{ID: 5, Text: "Sleep duration", Kind: KindChoice, Options: []string{"less than 5 hrs", "5-6 hrs", "7-8 hrs", "more than 8"}, Field: FieldSleepDuration},
	{ID: 6, Text: "Dietary habits", Kind: KindChoice, Options: []string{"healthy", "moderate", "unhealthy"}, Field: FieldDietaryHabits},
	{ID: 7, Text: "Have you ever had suicidal thoughts?", Kind: KindChoice, Options: []string{"Yes", "No"}, Field: FieldSuicidalThoughts},
	{ID: 8, Text: "Work/study hours?", Kind: KindInteger, Field: FieldWorkStudyHours},
	{ID: 9, Text: "Financial stress (1-10)", Kind: KindScale, Min: 1, Max: 10, Field: FieldFinancialStress},
	{ID: 10, Text: "Family history of mental illness?", Kind: KindChoice, Options: []string{"Yes", "No"}, Field: FieldFamilyMentalHistory},
}

var defaultCatalog = MustNew(seedQuestions)

// Default returns the built-in questionnaire.
func Default() *Catalog {
	return defaultCatalog
}
