package questionnaire

// DefaultTitle heads every document rendered from the compiled-in set.
const DefaultTitle = "Centre-State Relations Questionnaire"

// CentreState returns the compiled-in Centre-State relations question set in
// its canonical order. Each call returns a fresh copy.
func CentreState() QuestionSet {
	return QuestionSet{
		Title: DefaultTitle,
		Sections: []Section{
			{
				Key:  "legislative",
				Name: "Legislative Relations",
				Questions: []string{
					"What are the three lists in the Seventh Schedule of the Constitution, and how do they define the legislative powers of the Centre and states?",
					"Under what circumstances can the Union Parliament legislate on subjects in the State List?",
					"What is the doctrine of \"pith and substance\" in relation to Centre-State legislative relations?",
					"How does the Constitution address inconsistencies between Union and State laws on concurrent subjects?",
				},
			},
			{
				Key:  "administrative",
				Name: "Administrative Relations",
				Questions: []string{
					"How does the Constitution ensure that state governments carry out the directions of the Union Government?",
					"What are the provisions for the Centre to direct states in matters of national security?",
				},
			},
			{
				Key:  "financial",
				Name: "Financial Relations",
				Questions: []string{
					"How are financial resources allocated between the Centre and the states?",
					"What role do bodies like the Finance Commission play in Centre-State financial distribution?",
					"How do GST and other tax-sharing arrangements impact Centre-State financial relations?",
				},
			},
			{
				Key:  "commissions",
				Name: "Role of Commissions and Councils",
				Questions: []string{
					"What was the purpose of the Sarkaria Commission, and what were its key recommendations?",
					"What is the role of the Inter-State Council in promoting cooperation between Centre and states?",
					"What are the key recommendations of the Punchhi Commission concerning Centre-State relations?",
				},
			},
			{
				Key:  "constitutional",
				Name: "Constitutional and Judicial Influences",
				Questions: []string{
					"How have constitutional amendments, like the 42nd and 73rd amendments, affected Centre-State relations?",
					"How have judicial interpretations, particularly by the Supreme Court, shaped the understanding of Centre-State relations?",
				},
			},
			{
				Key:  "challenges",
				Name: "Challenges and Issues",
				Questions: []string{
					"What are some of the key challenges and tensions that exist in Centre-State relations in India?",
					"How do issues like financial imbalances, legislative conflicts, and administrative interventions impact these relations?",
				},
			},
			{
				Key:  "examples",
				Name: "Specific Examples",
				Questions: []string{
					"How does the Centre exert control over states during President's rule?",
					"How has the concept of cooperative federalism been applied in the context of Centre-State relations?",
				},
			},
			{
				Key:  "articles",
				Name: "Important Articles",
				Questions: []string{
					"Which articles of the Indian Constitution deal with legislative relations between the Centre and states?",
					"Which article deals with the executive power of the Union?",
				},
			},
			{
				Key:  "financial_articles",
				Name: "Articles Related to Financial Relations",
				Questions: []string{
					"What are the key features of the Seventh Schedule of the Indian Constitution?",
					"How does the Constitution ensure that the Union can give directions to the states?",
					"What are the main recommendations of the Sarkaria Commission concerning the role of Governors?",
					"Discuss the impact of the 42nd amendment on Centre-State relations.",
				},
			},
		},
	}
}
