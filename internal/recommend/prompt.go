package recommend

import (
	"fmt"
	"net/url"
	"strings"
)

const recommendSystemPrompt = "You are an expert education advisor specializing in online learning platforms. Provide course recommendations in valid JSON format only."

const analyzeSystemPrompt = "You are an experienced technical recruiter and career coach. Review resumes against current market standards and give specific, actionable feedback in Markdown."

func recommendPrompt(req Request, referenceContext string) string {
	var sb strings.Builder
	level := string(req.SkillLevel)
	fmt.Fprintf(&sb, "As an education advisor, recommend 5 Udemy courses for learning %q at %s level.\n\n", req.Topic, level)

	sb.WriteString("Context:\n")
	if len(req.History) > 0 {
		fmt.Fprintf(&sb, "The user has recently searched for: %s.\n", strings.Join(req.History, ", "))
	}
	if len(req.StarredCourses) > 0 {
		titles := make([]string, 0, len(req.StarredCourses))
		for _, c := range req.StarredCourses {
			titles = append(titles, c.Title)
		}
		fmt.Fprintf(&sb, "The user has starred courses related to: %s.\n", strings.Join(titles, ", "))
	}
	if referenceContext != "" {
		sb.WriteString("\n")
		sb.WriteString(referenceContext)
		sb.WriteString("\n")
	}

	searchURL := "https://www.udemy.com/courses/search/?q=" + url.QueryEscape(req.Topic)
	fmt.Fprintf(&sb, `
Provide your response as a JSON object with this exact structure:
{
  "courses": [
    {
      "id": "unique-id-1",
      "title": "Course Title",
      "description": "Brief 2-sentence description of what the course covers",
      "instructor": "Typical instructor expertise (e.g., 'Industry Expert' or 'Senior Developer')",
      "level": "%s",
      "url": "%s",
      "rating": 4.5,
      "isAiGenerated": true
    }
  ],
  "insights": "A brief 2-3 sentence personalized insight about the user's learning path based on their topic, skill level, and history."
}

Important:
- All URLs should point to Udemy's search page for the topic since we don't have direct course links
- Make recommendations realistic and relevant to %s learners
- Course titles should sound professional and realistic
- If user history shows progression, acknowledge that in insights
- Keep descriptions concise and actionable`, level, searchURL, level)
	return strings.TrimSpace(sb.String())
}

func analyzePrompt(resume, referenceContext string) string {
	var sb strings.Builder
	sb.WriteString(referenceContext)
	sb.WriteString("\n\n## Resume:\n\n")
	sb.WriteString(strings.TrimSpace(resume))
	sb.WriteString(`

Using the reference material above, review this resume. Respond with the sections
"Strengths", "Gaps", "Skills to Learn" and "Suggested Rewrites". Quote concrete
lines from the resume and quantify suggestions where possible.`)
	return sb.String()
}
