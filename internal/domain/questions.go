package domain

// DemoQuestions returns the built-in question pool used when no database is configured.
func DemoQuestions() []Question {
	return []Question{
		{ID: "1", Type: QuestionText, Question: "Who closed the gate to the Upside Down in Season 2?", Answer: "eleven"},
		{ID: "2", Type: QuestionText, Question: "What is the name of the monster from Season 1?", Answer: "demogorgon"},
		{ID: "3", Type: QuestionText, Question: "What game do the kids play in Mike's basement?", Answer: "dungeons and dragons"},
		{ID: "4", Type: QuestionText, Question: "What is Eleven's favorite food?", Answer: "eggos"},
		{ID: "5", Type: QuestionText, Question: "What is the name of the town where the show takes place?", Answer: "hawkins"},
		{ID: "6", Type: QuestionText, Question: "Who is the chief of police in Hawkins?", Answer: "hopper"},
		{ID: "7", Type: QuestionText, Question: "What is the name of the secret government laboratory?", Answer: "hawkins lab"},
		{ID: "8", Type: QuestionText, Question: "What does Joyce use to communicate with Will in Season 1?", Answer: "christmas lights"},
		{ID: "9", Type: QuestionText, Question: "What is the name of the arcade in Hawkins?", Answer: "palace arcade"},
		{ID: "10", Type: QuestionText, Question: "Who is the main villain in Season 4?", Answer: "vecna"},
		{ID: "11", Type: QuestionText, Question: "What song saves Max from Vecna?", Answer: "running up that hill"},
		{ID: "12", Type: QuestionText, Question: "What is Steve's signature weapon?", Answer: "nail bat"},
	}
}
