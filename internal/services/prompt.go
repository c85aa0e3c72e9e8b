package services

import (
	"strings"
)

const (
	documentTextPlaceholder   = "{{DOCUMENT_TEXT}}"
	resumeTextPlaceholder     = "{{RESUME_TEXT}}"
	jobDescriptionPlaceholder = "{{JOB_DESCRIPTION}}"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeAnalysisPrompt returns the analyzer prompt template. The
// backend substitutes {{DOCUMENT_TEXT}} with the resume text it receives
// alongside the prompt.
func (pb *PromptBuilder) BuildResumeAnalysisPrompt() string {
	return analyzeResumePrompt
}

// BuildJobMatchPrompt creates the prompt comparing a resume with a job
// description.
func (pb *PromptBuilder) BuildJobMatchPrompt(resumeText, jobDescription string) string {
	return strings.NewReplacer(
		resumeTextPlaceholder, resumeText,
		jobDescriptionPlaceholder, jobDescription,
	).Replace(jobMatchPrompt)
}

const analyzeResumePrompt = `First, determine if this document is actually a resume. Look for:

- Professional experience, work history, or employment information
- Education background, degrees, or academic information
- Skills, qualifications, or professional competencies
- Contact information and personal details

If this is NOT a resume (e.g., invoice, receipt, contract, article, manual, etc.), respond with:

{
  "error": "This document does not appear to be a resume. Please upload a proper resume containing professional experience, education, and skills sections."
}

If this IS a resume, analyze it thoroughly and provide comprehensive feedback in this JSON format:

{
  "overallScore": "X/10",
  "strengths": ["strength 1", "strength 2", "strength 3"],
  "improvements": ["improvement 1", "improvement 2", "improvement 3"],
  "keywords": ["keyword 1", "keyword 2", "keyword 3"],
  "summary": "Brief overall assessment",
  "performanceMetrics": {
    "formatting": X,
    "contentQuality": X,
    "keywordUsage": X,
    "atsCompatibility": X,
    "quantifiableAchievements": X
  },
  "actionItems": ["specific actionable item 1", "specific actionable item 2", "specific actionable item 3"],
  "proTips": ["professional tip 1", "professional tip 2", "professional tip 3"],
  "atsChecklist": ["ats requirement 1", "ats requirement 2", "ats requirement 3"]
}

IMPORTANT: All scores in performanceMetrics must be numbers between 1-10 only.

Document text:
` + documentTextPlaceholder

const jobMatchPrompt = `You are an expert recruiter and ATS system. Compare this resume with the job description and provide a detailed match analysis.

RESUME:
` + resumeTextPlaceholder + `

JOB DESCRIPTION:
` + jobDescriptionPlaceholder + `

Analyze the match and respond with this EXACT JSON format:

{
  "matchPercentage": X,
  "matchLevel": "excellent|good|fair|poor",
  "executiveSummary": "3-4 sentences on overall match quality, the candidate's key strengths for this role and the main gaps to address.",
  "overallAssessment": "Brief 2-3 sentence summary of the match",
  "matchingSkills": ["skill from resume that matches job requirement 1", "..."],
  "missingSkills": ["required skill missing from resume 1", "..."],
  "matchingKeywords": ["keyword 1", "..."],
  "missingKeywords": ["important keyword missing 1", "..."],
  "experienceMatch": {"score": X, "feedback": "How well does experience match the job requirements"},
  "educationMatch": {"score": X, "feedback": "How well does education match the job requirements"},
  "recommendations": ["Specific action to improve match 1", "..."],
  "strengthsForThisJob": ["Why you're a good fit point 1", "..."],
  "weaknessesForThisJob": ["Gap or weakness 1", "..."],
  "detailedBreakdown": {
    "technicalSkills": X,
    "softSkills": X,
    "experience": X,
    "education": X,
    "certifications": X
  }
}

CRITICAL SCORING INSTRUCTIONS:
- matchPercentage: Rate from 0-100 (this is a percentage)
- All scores in detailedBreakdown MUST be numbers between 1-10 ONLY (NOT percentages, NOT out of 100)
- experienceMatch.score and educationMatch.score must also be 1-10

matchLevel should be:
- "excellent" if 80-100%
- "good" if 60-79%
- "fair" if 40-59%
- "poor" if 0-39%

Be honest and specific. Provide actionable feedback.`
