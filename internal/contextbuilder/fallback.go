package contextbuilder

// FallbackVersion identifies the revision of FallbackContext. Bump it when the
// text is edited so logs show which guidance a caller received.
const FallbackVersion = "2024-2025.1"

// FallbackContext is returned verbatim whenever retrieval fails. It is
// maintained by hand and is not derived from the knowledge base.
const FallbackContext = `## Market Standards (2024-2025):

### In-Demand Technical Skills:
- Frontend: React, Next.js, TypeScript, Tailwind CSS
- Backend: Node.js, Python, Go, GraphQL, REST APIs
- Cloud: AWS, Azure, GCP, Docker, Kubernetes, Terraform
- Data/AI: Python, SQL, TensorFlow, PyTorch, LangChain

### Resume Best Practices:
- Use action verbs: Led, Developed, Implemented, Optimized
- Quantify achievements with metrics (%, $, numbers)
- Keep to 1-2 pages
- Include: Contact, Summary, Experience, Skills, Education
- Tailor keywords for ATS systems

### Soft Skills in Demand:
- Leadership & team collaboration
- Communication (written/verbal)
- Problem-solving
- Agile/Scrum methodologies`
