package extract

import "regexp"

var (
	emailPattern      = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	phonePattern      = regexp.MustCompile(`\b\d{10}\b`)
	experiencePattern = regexp.MustCompile(`(?i)\b\d{1,2}\s*(years?|yrs?)\b`)
	yearPattern       = regexp.MustCompile(`\b\d{4}\b`)
	cgpaPattern       = regexp.MustCompile(`\b\d\.\d{1,2}\b`)
	percentPattern    = regexp.MustCompile(`\b\d{1,3}\s*%`)
)

var (
	DegreeTerms = []string{"B.Sc", "M.Sc", "B.Tech", "M.Tech", "PhD", "MBA", "Bachelor", "Master", "Diploma"}

	DisciplineTerms = []string{
		"Computer Science", "Electrical Engineering", "Mechanical Engineering", "Civil Engineering",
		"Biotechnology", "Chemistry", "Physics", "Mathematics", "Economics", "Business Administration",
	}

	SkillTerms = []string{
		"Python", "Java", "C++", "Machine Learning", "Data Analysis", "Web Development", "SQL",
		"Project Management", "Communication", "Teamwork",
	}

	ActivityTerms = []string{"certification", "internship", "volunteer", "workshop", "training", "conference"}
)

// Email and Phone report an empty string when absent: the record keeps those
// cells blank instead of writing NotMentioned.
var (
	Email = Field{
		Name:       "email",
		Strategies: []Strategy{FirstMatch("email", emailPattern)},
	}

	Phone = Field{
		Name:       "phone",
		Strategies: []Strategy{FirstMatch("ten_digits", phonePattern)},
	}

	Education = Field{
		Name:       "education",
		Strategies: []Strategy{Vocabulary("degrees", DegreeTerms)},
		Sentinel:   NotMentioned,
	}

	Discipline = Field{
		Name:       "discipline",
		Strategies: []Strategy{Vocabulary("disciplines", DisciplineTerms)},
		Sentinel:   NotMentioned,
	}

	Skills = Field{
		Name:       "skills",
		Strategies: []Strategy{Vocabulary("skills", SkillTerms)},
		Sentinel:   NotMentioned,
	}

	Extracurricular = Field{
		Name:       "extracurricular",
		Strategies: []Strategy{Vocabulary("activities", ActivityTerms)},
		Sentinel:   NotMentioned,
	}

	Experience = Field{
		Name:       "experience",
		Strategies: []Strategy{FirstMatch("years", experiencePattern)},
		Sentinel:   NotMentioned,
	}

	// PassingYear takes the first standalone four digit number anywhere in the
	// text. It may be a phone fragment or an unrelated year.
	PassingYear = Field{
		Name:       "passing_year",
		Strategies: []Strategy{FirstMatch("four_digits", yearPattern)},
		Sentinel:   NotMentioned,
	}

	CGPA = Field{
		Name: "cgpa_or_percentile",
		Strategies: []Strategy{
			FirstMatch("cgpa", cgpaPattern),
			FirstMatch("percent", percentPattern),
		},
		Sentinel: NotMentioned,
	}
)
