package knowledge

import "learnrag/internal/domain"

var defaultItems = []domain.KnowledgeItem{
	{Category: domain.CategoryResumeFormat, Content: "Keep resumes to one page for under ten years of experience and at most two pages for senior roles."},
	{Category: domain.CategoryResumeFormat, Content: "Order resume sections as contact details, professional summary, experience, skills, projects and education."},
	{Category: domain.CategoryResumeFormat, Content: "Use a clean single-column layout with consistent fonts, standard section headings and reverse chronological order."},
	{Category: domain.CategoryResumeFormat, Content: "A professional summary of two to three lines should state the target role, years of experience and strongest skills."},
	{Category: domain.CategoryAchievements, Content: "Start every experience bullet with an action verb such as Led, Built, Implemented, Optimized or Reduced."},
	{Category: domain.CategoryAchievements, Content: "Quantify achievements with metrics: percentages, revenue, latency, cost savings, users served or team size."},
	{Category: domain.CategoryAchievements, Content: "Describe achievements as problem, action and measurable result rather than listing job duties."},
	{Category: domain.CategoryATS, Content: "Applicant tracking systems parse plain text best; avoid tables, text boxes, images and headers or footers for key content."},
	{Category: domain.CategoryATS, Content: "Mirror keywords from the job description in skills and experience sections so ATS keyword matching ranks the resume."},
	{Category: domain.CategoryATS, Content: "Submit resumes as PDF or DOCX with standard section names like Experience, Education and Skills for reliable ATS parsing."},
	{Category: domain.CategoryTechnicalSkills, Content: "Frontend roles expect React, Next.js, TypeScript and Tailwind CSS along with accessibility and performance profiling."},
	{Category: domain.CategoryTechnicalSkills, Content: "Backend roles value Go, Python, Node.js, REST and GraphQL API design, SQL databases and message queues."},
	{Category: domain.CategoryTechnicalSkills, Content: "Cloud and DevOps skills in demand include AWS, Azure, GCP, Docker, Kubernetes, Terraform and CI/CD pipelines."},
	{Category: domain.CategoryTechnicalSkills, Content: "Data and AI roles look for Python, SQL, pandas, TensorFlow, PyTorch, LangChain and experience shipping models to production."},
	{Category: domain.CategorySoftSkills, Content: "Leadership and team collaboration are best shown through mentoring, cross-team projects and ownership of delivery."},
	{Category: domain.CategorySoftSkills, Content: "Communication skills show in design documents, technical presentations, stakeholder updates and code review."},
	{Category: domain.CategorySoftSkills, Content: "Problem-solving and Agile or Scrum experience are frequently requested alongside technical skills."},
	{Category: domain.CategoryIndustryTrends, Content: "Employers increasingly ask for experience integrating large language models, retrieval augmented generation and AI tooling."},
	{Category: domain.CategoryIndustryTrends, Content: "Platform engineering, observability and cloud cost optimization are growing areas of hiring demand."},
	{Category: domain.CategoryLearningPaths, Content: "Beginners learn fastest with a structured course followed by small projects that repeat the core concepts."},
	{Category: domain.CategoryLearningPaths, Content: "Intermediate learners should build an end-to-end portfolio project and read production code in open source repositories."},
	{Category: domain.CategoryLearningPaths, Content: "Advanced learners benefit from system design study, contributing to open source and teaching concepts to others."},
}

// Default returns the built-in knowledge base.
func Default() *Base {
	b, err := New(defaultItems)
	if err != nil {
		panic("knowledge: invalid built-in corpus: " + err.Error())
	}
	return b
}
