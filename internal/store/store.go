// Package store persists assessments and recommendations in sqlite and
// assembles dashboard payloads from them.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ppiankov/awsposture/internal/aggregate"
	"github.com/ppiankov/awsposture/internal/dashboard"
	_ "modernc.org/sqlite"
)

// Store wraps the sqlite connection.
type Store struct {
	*sql.DB
}

// Open creates (or opens) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	schema := `
    CREATE TABLE IF NOT EXISTS assessments (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        category TEXT NOT NULL,
        resource_id TEXT NOT NULL,
        name TEXT,
        region TEXT,
        security_score REAL NOT NULL DEFAULT 0,
        risk_level TEXT NOT NULL DEFAULT 'Unknown',
        issues TEXT NOT NULL DEFAULT '[]',
        ebs_encryption_enabled INTEGER NOT NULL DEFAULT 0,
        has_public_ip INTEGER NOT NULL DEFAULT 0,
        state TEXT,
        encryption_enabled INTEGER NOT NULL DEFAULT 0,
        public_access_block_disabled INTEGER NOT NULL DEFAULT 0,
        UNIQUE(category, resource_id)
    );
    CREATE TABLE IF NOT EXISTS recommendations (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        title TEXT NOT NULL,
        description TEXT,
        priority TEXT NOT NULL DEFAULT 'MEDIUM',
        issue TEXT,
        resource_type TEXT,
        UNIQUE(title, issue)
    );`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db}, nil
}

// PutAssessment inserts or replaces one assessment. Re-posting the same
// resource updates it, so repeated collector runs stay idempotent.
func (s *Store) PutAssessment(category dashboard.Category, a dashboard.Assessment) error {
	issues, err := json.Marshal(a.Issues)
	if err != nil {
		return fmt.Errorf("encode issues: %w", err)
	}

	resourceID := a.ResourceID
	if resourceID == "" {
		resourceID = name(a, category)
	}

	_, err = s.Exec(`
        INSERT INTO assessments(
            category, resource_id, name, region, security_score, risk_level, issues,
            ebs_encryption_enabled, has_public_ip, state,
            encryption_enabled, public_access_block_disabled
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(category, resource_id) DO UPDATE SET
            name=excluded.name, region=excluded.region,
            security_score=excluded.security_score, risk_level=excluded.risk_level,
            issues=excluded.issues,
            ebs_encryption_enabled=excluded.ebs_encryption_enabled,
            has_public_ip=excluded.has_public_ip, state=excluded.state,
            encryption_enabled=excluded.encryption_enabled,
            public_access_block_disabled=excluded.public_access_block_disabled`,
		string(category), resourceID, name(a, category), a.Region,
		a.SecurityScore, string(a.RiskLevel), string(issues),
		a.EBSEncryptionEnabled, a.HasPublicIP, a.State,
		a.EncryptionEnabled, a.PublicAccessBlockDisabled,
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

// PutRecommendation inserts or replaces one recommendation.
func (s *Store) PutRecommendation(r dashboard.RecommendationRecord) error {
	_, err := s.Exec(`
        INSERT INTO recommendations(title, description, priority, issue, resource_type)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(title, issue) DO UPDATE SET
            description=excluded.description, priority=excluded.priority,
            resource_type=excluded.resource_type`,
		r.Title, r.Description, r.Priority, r.Issue, r.ResourceType,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

// ListAssessments returns all assessments in one category, insertion
// order.
func (s *Store) ListAssessments(category dashboard.Category) ([]dashboard.Assessment, error) {
	rows, err := s.Query(`
        SELECT resource_id, name, region, security_score, risk_level, issues,
               ebs_encryption_enabled, has_public_ip, state,
               encryption_enabled, public_access_block_disabled
        FROM assessments WHERE category = ? ORDER BY id`, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assessments := []dashboard.Assessment{}
	for rows.Next() {
		var (
			a      dashboard.Assessment
			name   sql.NullString
			region sql.NullString
			state  sql.NullString
			level  string
			issues string
		)
		if err := rows.Scan(&a.ResourceID, &name, &region, &a.SecurityScore, &level, &issues,
			&a.EBSEncryptionEnabled, &a.HasPublicIP, &state,
			&a.EncryptionEnabled, &a.PublicAccessBlockDisabled); err != nil {
			return nil, err
		}
		a.RiskLevel = dashboard.RiskLevel(level)
		a.Region = region.String
		a.State = state.String
		if category == dashboard.CategoryEC2 {
			a.InstanceName = name.String
		} else {
			a.BucketName = name.String
		}
		if err := json.Unmarshal([]byte(issues), &a.Issues); err != nil {
			a.Issues = []string{}
		}
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

// ListRecommendations returns all recommendations, insertion order.
func (s *Store) ListRecommendations() ([]dashboard.RecommendationRecord, error) {
	rows, err := s.Query(`
        SELECT title, description, priority, issue, resource_type
        FROM recommendations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []dashboard.RecommendationRecord{}
	for rows.Next() {
		var (
			r            dashboard.RecommendationRecord
			description  sql.NullString
			issue        sql.NullString
			resourceType sql.NullString
		)
		if err := rows.Scan(&r.Title, &description, &r.Priority, &issue, &resourceType); err != nil {
			return nil, err
		}
		r.Description = description.String
		r.Issue = issue.String
		r.ResourceType = resourceType.String
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Payload assembles the full dashboard payload from stored records.
func (s *Store) Payload() (*dashboard.DashboardPayload, error) {
	ec2, err := s.ListAssessments(dashboard.CategoryEC2)
	if err != nil {
		return nil, fmt.Errorf("list ec2 assessments: %w", err)
	}
	s3, err := s.ListAssessments(dashboard.CategoryS3)
	if err != nil {
		return nil, fmt.Errorf("list s3 assessments: %w", err)
	}
	recs, err := s.ListRecommendations()
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}

	return dashboard.Normalize(&dashboard.DashboardPayload{
		Summary: dashboard.Summary{
			EC2: dashboard.CategorySummary{AverageScore: aggregate.AverageScore(ec2), Count: len(ec2)},
			S3:  dashboard.CategorySummary{AverageScore: aggregate.AverageScore(s3), Count: len(s3)},
		},
		EC2:             dashboard.AssessmentGroup{Assessments: ec2},
		S3:              dashboard.AssessmentGroup{Assessments: s3},
		Recommendations: recs,
	}), nil
}

func name(a dashboard.Assessment, category dashboard.Category) string {
	if category == dashboard.CategoryEC2 {
		return a.InstanceName
	}
	return a.BucketName
}
