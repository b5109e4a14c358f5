package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/himanshukadian/himanshu-blog-backend/backend/models"
	"github.com/openai/openai-go/v3"
	"gorm.io/datatypes"
)

// Static dictionary used for ATS keyword extraction. Matching is a
// case-insensitive substring check against the job description.
var techKeywords = []string{
	// Programming languages
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Go", "Rust", "PHP", "Ruby", "Swift", "Kotlin",
	// Frameworks and libraries
	"React", "Angular", "Vue", "Node.js", "Express", "Spring Boot", "Django", "Flask", "Laravel", "Rails",
	// Databases
	"MongoDB", "PostgreSQL", "MySQL", "Redis", "Elasticsearch", "DynamoDB", "Cassandra", "SQL", "NoSQL",
	// Cloud and DevOps
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "GitLab", "CircleCI", "Terraform", "Ansible",
	// Tools and practices
	"Git", "API", "REST", "GraphQL", "Microservices", "CI/CD", "Agile", "Scrum", "Machine Learning", "AI",
	// Soft skills
	"leadership", "teamwork", "communication", "problem-solving", "project management", "collaboration",
	"analytical", "creative", "innovative", "strategic", "detail-oriented",
}

// ExtractKeywords pulls dictionary keywords present in the job
// description, deduplicated, preserving dictionary order.
func ExtractKeywords(jobDescription string) []string {
	text := strings.ToLower(jobDescription)
	seen := make(map[string]bool)
	var keywords []string
	for _, keyword := range techKeywords {
		lower := strings.ToLower(keyword)
		if strings.Contains(text, lower) && !seen[lower] {
			seen[lower] = true
			keywords = append(keywords, keyword)
		}
	}
	return keywords
}

// JobRequirements are coarse requirement signals pattern-matched out of
// a job description.
type JobRequirements struct {
	Experience string `json:"experience"`
	Education  string `json:"education"`
}

var yearsPattern = regexp.MustCompile(`(?i)(\d+)\+?\s*years?\s*of\s*experience`)

func ExtractRequirements(jobDescription string) JobRequirements {
	var req JobRequirements

	if m := yearsPattern.FindStringSubmatch(jobDescription); m != nil {
		req.Experience = m[1] + "+ years of experience"
	}

	lower := strings.ToLower(jobDescription)
	for _, pattern := range []string{"bachelor", "master", "phd", "degree", "computer science", "engineering"} {
		if strings.Contains(lower, pattern) {
			req.Education = "Relevant degree preferred"
			break
		}
	}
	return req
}

// resumeText flattens the searchable sections of a resume for keyword
// matching.
func resumeText(r *models.Resume) string {
	var b strings.Builder
	b.WriteString(r.Summary)
	for _, exp := range r.Experience.Data() {
		b.WriteString(" " + strings.Join(exp.Highlights, " "))
	}
	skills := r.Skills.Data()
	b.WriteString(" " + strings.Join(skills.Languages, " "))
	b.WriteString(" " + strings.Join(skills.Technologies, " "))
	b.WriteString(" " + strings.Join(skills.DeveloperTools, " "))
	b.WriteString(" " + strings.Join(skills.Databases, " "))
	return strings.ToLower(b.String())
}

// MatchKeywords splits job keywords into matched/missing against the
// resume text and returns the overlap score in percent.
func MatchKeywords(r *models.Resume, keywords []string) (matched, missing []string, score int) {
	text := resumeText(r)
	for _, keyword := range keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}
	if len(keywords) > 0 {
		score = int(float64(len(matched))/float64(len(keywords))*100 + 0.5)
	}
	return matched, missing, score
}

// CustomizationResult is the structured shape the LLM is asked to
// produce when tailoring a resume.
type CustomizationResult struct {
	ExtractedInfo struct {
		CompanyName string `json:"companyName" jsonschema_description:"Company name extracted from the job description"`
		JobTitle    string `json:"jobTitle" jsonschema_description:"Job title extracted from the job description"`
	} `json:"extractedInfo"`
	CustomizedData struct {
		Summary    string                    `json:"summary" jsonschema_description:"Summary tailored to the job, under 200 words"`
		Experience []models.ResumeExperience `json:"experience" jsonschema_description:"Experience entries with job-relevant highlights emphasized"`
		Skills     models.ResumeSkills       `json:"skills" jsonschema_description:"Skills with relevant technologies surfaced"`
	} `json:"customizedData"`
	ATSScore         int                         `json:"atsScore" jsonschema_description:"ATS score 1-100 based on job match"`
	MatchPercentage  int                         `json:"matchPercentage" jsonschema_description:"Requirements coverage 1-100"`
	KeywordsMatched  []string                    `json:"keywordsMatched"`
	KeywordsMissing  []string                    `json:"keywordsMissing"`
	CustomizationLog []models.CustomizationEntry `json:"customizationLog"`
}

var customizationSchema = GenerateSchema[CustomizationResult]()

var jsonFences = regexp.MustCompile("```json\n?|\n?```")

// CustomizeResume asks the LLM to tailor the template to the job
// description. Any upstream or parse failure falls back to the
// deterministic minimal transformation; this function never fails.
func CustomizeResume(ctx context.Context, llm *LLM, base *models.Resume, jobDescription, companyName, jobTitle string) CustomizationResult {
	if !llm.Ready() {
		return FallbackCustomization(base, jobDescription, companyName, jobTitle)
	}

	prompt := fmt.Sprintf(`You are an expert resume writer and ATS specialist. Analyze the job description and customize the resume accordingly.

Job description:
%s

Company: %s
Position: %s

Current resume:
Name: %s
Summary: %s
Experience: %s
Skills: %s

Extract the company name and job title from the job description, tailor the summary and experience highlights to the role, surface relevant skills, compute a realistic ATS score, list 5-10 matched and missing keywords, and log every significant change.`,
		jobDescription, companyName, jobTitle,
		base.Name, base.Summary, mustJSON(base.Experience.Data()), mustJSON(base.Skills.Data()))

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage("You are an expert resume writer and ATS optimization specialist. You always respond with valid JSON only."),
		openai.UserMessage(prompt),
	}

	raw, err := llm.CompleteStructured(ctx, "resume_customization", customizationSchema, messages, 2000)
	if err != nil {
		return FallbackCustomization(base, jobDescription, companyName, jobTitle)
	}

	var result CustomizationResult
	cleaned := strings.TrimSpace(jsonFences.ReplaceAllString(raw, ""))
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return FallbackCustomization(base, jobDescription, companyName, jobTitle)
	}

	if result.CustomizedData.Summary == "" {
		result.CustomizedData.Summary = base.Summary
	}
	if len(result.CustomizedData.Experience) == 0 {
		result.CustomizedData.Experience = base.Experience.Data()
	}
	if len(result.CustomizationLog) == 0 {
		result.CustomizationLog = []models.CustomizationEntry{{
			Section:   "summary",
			Changes:   "Tailored to job description",
			Timestamp: time.Now(),
		}}
	}
	return result
}

// FallbackCustomization is the deterministic path used when the LLM is
// unavailable or returns unparseable output: keyword lists come from the
// static dictionary, content is carried over unchanged, and the log
// records that the fallback ran.
func FallbackCustomization(base *models.Resume, jobDescription, companyName, jobTitle string) CustomizationResult {
	var result CustomizationResult

	result.ExtractedInfo.CompanyName = companyName
	if result.ExtractedInfo.CompanyName == "" {
		result.ExtractedInfo.CompanyName = "Target Company"
	}
	result.ExtractedInfo.JobTitle = jobTitle
	if result.ExtractedInfo.JobTitle == "" {
		result.ExtractedInfo.JobTitle = "Applied Position"
	}

	result.CustomizedData.Summary = base.Summary
	result.CustomizedData.Experience = base.Experience.Data()
	result.CustomizedData.Skills = base.Skills.Data()

	keywords := ExtractKeywords(jobDescription)
	matched, missing, score := MatchKeywords(base, keywords)
	result.KeywordsMatched = matched
	result.KeywordsMissing = missing
	result.ATSScore = score
	result.MatchPercentage = score

	result.CustomizationLog = []models.CustomizationEntry{{
		Section:   "fallback",
		Changes:   "Applied deterministic customization; LLM output unavailable",
		Timestamp: time.Now(),
	}}
	return result
}

// AnalyzeKeywordsWithLLM asks the provider for additional keywords and
// parses the JSON array out of its answer. Failures degrade to an empty
// list; the static extraction still stands on its own.
func AnalyzeKeywordsWithLLM(ctx context.Context, llm *LLM, jobDescription string) []string {
	if !llm.Ready() {
		return nil
	}

	prompt := fmt.Sprintf(`Analyze this job description and extract the most important technical skills, tools, and qualifications. Return only a JSON array of keywords:

Job Description: %s

Return format: ["keyword1", "keyword2", "keyword3"]`, jobDescription)

	content, err := llm.Complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}, 200)
	if err != nil {
		return nil
	}

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil
	}

	var keywords []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &keywords); err != nil {
		return nil
	}
	return keywords
}

// MergeKeywords deduplicates the union of two keyword lists.
func MergeKeywords(a, b []string) []string {
	seen := make(map[string]bool)
	var merged []string
	for _, keyword := range append(append([]string{}, a...), b...) {
		lower := strings.ToLower(keyword)
		if !seen[lower] {
			seen[lower] = true
			merged = append(merged, keyword)
		}
	}
	return merged
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BaseTemplate seeds the canonical resume document.
func BaseTemplate() *models.Resume {
	return &models.Resume{
		Name:     "Himanshu Chaudhary",
		Title:    "Software Engineer II",
		Location: "Bulandshahr, UP",
		Email:    "himanshu.c.official@gmail.com",
		Phone:    "+91-9761744048",
		Linkedin: "https://www.linkedin.com/in/himanshucofficial/",
		Github:   "https://github.com/himanshukadian",
		Summary:  "Software Engineer with 3+ years of experience in backend and full-stack development, specializing in Java and Spring Boot. Successfully delivered scalable solutions, including AI-powered chat assistants and optimized systems that reduce operational costs. Collaborates effectively with cross-functional teams to drive innovation, enhance performance, and ensure platform stability.",
		Skills: datatypes.NewJSONType(models.ResumeSkills{
			Languages:      []string{"Python", "Java", "C++", "JavaScript", "SQL"},
			Technologies:   []string{"Spring Boot", "Hibernate", "JDBC", "AI/GenAI", "Docker", "Kubernetes", "Microservice Architecture", "System Design", "React", "Node.js"},
			DeveloperTools: []string{"VS Code", "IntelliJ", "GCP", "AWS", "Kafka", "DynamoDB", "Lambda", "Cloud Functions", "Jenkins"},
			Databases:      []string{"MongoDB", "NoSQL", "MySQL", "PostgreSQL"},
			Others:         []string{"Automation", "Building Tools"},
		}),
		Experience: datatypes.NewJSONType([]models.ResumeExperience{
			{
				Company:  "Wayfair",
				Role:     "Software Engineer II",
				Location: "Bangalore, Karnataka",
				Duration: "Apr 2023 - Present",
				Highlights: []string{
					"Designed a Lane Management System optimizing lane selection based on 50-70 parameters, reducing fulfillment costs by 20%.",
					"Built Voyager, an AI-powered assistant translating English to SQL queries for business collaboration.",
					"Engineered LMP Insight tool processing 50K events/min for metrics tracking and triage reduction.",
					"Redesigned label printing platform for 100 labels/sec and added automated testing pipelines.",
				},
			},
			{
				Company:  "Amazon",
				Role:     "SDE I",
				Location: "Bangalore, Karnataka",
				Duration: "Jul 2022 - Mar 2023",
				Highlights: []string{
					"Built a pipeline migrating 1M customers across marketplaces, automating and improving backend integration.",
					"Migrated backend services reducing IMR costs by 50% with improved performance and reliability.",
				},
			},
			{
				Company:  "Mobeology Communications",
				Role:     "Software Engineer",
				Location: "Faridabad, Haryana",
				Duration: "Jan 2021 - Jun 2022",
				Highlights: []string{
					"Designed a profiling dashboard for publishers and campaigns.",
					"Developed microservices for analytics management.",
				},
			},
		}),
		Education: datatypes.NewJSONType([]models.ResumeEducation{
			{
				Institution:  "National Institute of Technology Warangal (NITW)",
				Degree:       "Master of Computer Applications",
				Year:         "2022",
				Location:     "Telangana, India",
				Achievements: []string{"Class Topper MCA 2019-2020"},
			},
			{
				Institution: "University of Delhi (DU)",
				Degree:      "B.Sc (H) Computer Science",
				Year:        "2019",
				Location:    "Delhi, India",
			},
		}),
		Projects: datatypes.NewJSONType([]models.ResumeProject{
			{
				Name:         "Grievance Portal",
				Technologies: []string{"Python", "Django", "AWS EC2", "Docker", "NLP"},
				Description:  "A web app for students to submit complaints related to academics, mess, and hostel issues.",
			},
			{
				Name:         "NITADDA",
				Technologies: []string{"Python", "Django", "AWS EC2", "Docker"},
				Description:  "A platform for NIT students to share and access study resources.",
			},
		}),
		Achievements: datatypes.NewJSONType([]string{
			"Class Topper MCA 2019-2020",
			"School Topper Sr. Secondary (CBSE) 2015-2016",
			"Lead Web Developer at College Software Development Cell (WSDC) 2020-2022",
		}),
		IsTemplate: true,
	}
}
