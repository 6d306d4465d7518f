package workflow

import "github.com/murtezataher/AgenticAIFYP/internal/models"

// FallbackQuestion is asked when a job has no question list.
const FallbackQuestion = "Tell me about yourself."

// FeedbackPool holds the canned interview feedback lines.
var FeedbackPool = []string{
	"Candidate shows strong technical knowledge.",
	"Candidate has basic understanding but needs improvement.",
	"Excellent problem-solving and conceptual clarity.",
}

// DefaultCatalog returns the built-in job catalog.
func DefaultCatalog() []models.JobPosting {
	return []models.JobPosting{
		{
			ID:          "Software Developer",
			Description: "We are looking for a Software Developer with strong skills in Python, Java, and problem-solving.",
			Questions: []string{
				"What are the principles of Object-Oriented Programming?",
				"Explain the difference between Python and Java.",
				"How would you optimize a slow algorithm in code?",
			},
		},
		{
			ID:          "Data Scientist",
			Description: "We are looking for a Data Scientist skilled in Python, SQL, and Machine Learning.",
			Questions: []string{
				"What is the difference between supervised and unsupervised learning?",
				"How do you handle missing data in a dataset?",
				"Explain bias-variance tradeoff in machine learning.",
			},
		},
		{
			ID:          "Network Engineer",
			Description: "We are looking for a Network Engineer familiar with TCP/IP, routing, and firewalls.",
			Questions: []string{
				"Explain the difference between TCP and UDP.",
				"What is the role of a subnet mask?",
				"How would you troubleshoot a network latency issue?",
			},
		},
	}
}

// Questions returns the interview questions for a job, or the single
// fallback question when the job defines none.
func Questions(job models.JobPosting) []string {
	if len(job.Questions) == 0 {
		return []string{FallbackQuestion}
	}

	questions := make([]string, len(job.Questions))
	copy(questions, job.Questions)
	return questions
}
