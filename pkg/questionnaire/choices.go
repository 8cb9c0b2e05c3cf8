package questionnaire

import "slices"

// Professions lists the respondent types accepted at registration.
var Professions = []string{
	"Politicians",
	"Academician",
	"Scholars",
	"Researchers",
	"Journalists",
	"Activists",
	"MP/MLA",
	"Bureaucrat",
	"Government Official",
	"Sitting / Retired Judges",
	"Others",
}

// Specializations lists the accepted areas of specialization.
var Specializations = []string{
	"Constitutional Law",
	"Political Science",
	"Public Administration",
	"Economics",
	"Other",
}

// Genders lists the accepted gender options.
var Genders = []string{"Male", "Female", "Transgender"}

// IsProfession reports whether value is one of Professions.
func IsProfession(value string) bool { return slices.Contains(Professions, value) }

// IsSpecialization reports whether value is one of Specializations.
func IsSpecialization(value string) bool { return slices.Contains(Specializations, value) }

// IsGender reports whether value is one of Genders.
func IsGender(value string) bool { return slices.Contains(Genders, value) }
