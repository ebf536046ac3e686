// Package jobs extracts skills from the resume source and matches job
// postings against them. The actual job-board scraping is delegated to an
// external service behind the Scraper interface; this package ranks
// whatever the scraper returns by keyword overlap with the resume.
package jobs
