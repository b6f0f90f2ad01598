// Package scanrepo stores AI-detection scan results in Postgres.
package scanrepo

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"sme-storefront/internal/scan"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) scan.Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Upsert(ctx context.Context, result scan.Result) (*scan.Result, error) {
	const q = `
INSERT INTO sme_ai_detection (id, url, url_path, ai_score, human_score, status, words_checked, credits_used, content_hash, checked_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (url) DO UPDATE SET
    url_path = EXCLUDED.url_path,
    ai_score = EXCLUDED.ai_score,
    human_score = EXCLUDED.human_score,
    status = EXCLUDED.status,
    words_checked = EXCLUDED.words_checked,
    credits_used = EXCLUDED.credits_used,
    content_hash = EXCLUDED.content_hash,
    checked_at = EXCLUDED.checked_at
RETURNING id::text
`
	stored := result
	err := r.pool.QueryRow(ctx, q,
		uuid.NewString(),
		result.URL,
		result.URLPath,
		result.AIScore,
		result.HumanScore,
		result.Status,
		result.WordsChecked,
		result.CreditsUsed,
		result.ContentHash,
		result.CheckedAt,
	).Scan(&stored.ID)
	if err != nil {
		r.logger.Printf("scan repo: upsert url=%s error=%v", result.URL, err)
		return nil, err
	}
	r.logger.Printf("scan repo: upserted url=%s status=%s ai_score=%d", stored.URL, stored.Status, stored.AIScore)
	return &stored, nil
}

func (r *postgresRepo) GetByURL(ctx context.Context, url string) (*scan.Result, error) {
	const q = `
SELECT id::text, url, url_path, ai_score, human_score, status, words_checked, credits_used, content_hash, checked_at
FROM sme_ai_detection
WHERE url = $1
`
	var res scan.Result
	err := r.pool.QueryRow(ctx, q, url).Scan(
		&res.ID, &res.URL, &res.URLPath, &res.AIScore, &res.HumanScore,
		&res.Status, &res.WordsChecked, &res.CreditsUsed, &res.ContentHash, &res.CheckedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Printf("scan repo: get url=%s error=%v", url, err)
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]scan.Result, error) {
	const q = `
SELECT id::text, url, url_path, ai_score, human_score, status, words_checked, credits_used, content_hash, checked_at
FROM sme_ai_detection
ORDER BY checked_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Printf("scan repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []scan.Result
	for rows.Next() {
		var res scan.Result
		if err := rows.Scan(
			&res.ID, &res.URL, &res.URLPath, &res.AIScore, &res.HumanScore,
			&res.Status, &res.WordsChecked, &res.CreditsUsed, &res.ContentHash, &res.CheckedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("scan repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}
