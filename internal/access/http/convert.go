package http

import (
	"time"

	"github.com/aussiebroadwan/lounge/internal/access/domain"
	"github.com/aussiebroadwan/lounge/internal/access/service"
	"github.com/aussiebroadwan/lounge/pkg/accesssdk"
)

func toTokenResponse(tok domain.InvitationToken, status domain.TokenStatus) accesssdk.TokenResponse {
	issuedAt, expiresAt := tok.IssuedAt, tok.ExpiresAt
	return accesssdk.TokenResponse{
		ID:            tok.ID,
		Token:         tok.Token,
		Status:        string(status),
		IssuedBy:      tok.IssuedBy,
		IssuedAt:      &issuedAt,
		DurationHours: tok.DurationHours,
		ExpiresAt:     &expiresAt,
		UsedBy:        tok.UsedBy,
		UsedAt:        tok.UsedAt,
	}
}

func toMembershipResponse(m domain.PremiumMembership) accesssdk.MembershipResponse {
	return accesssdk.MembershipResponse{
		ID:            m.ID,
		UserID:        m.UserID,
		SourceTokenID: m.SourceTokenID,
		JoinedAt:      m.JoinedAt,
		ExpiresAt:     m.ExpiresAt,
		Status:        string(m.Status),
		ExpiredAt:     m.ExpiredAt,
	}
}

func toQueueStatus(req domain.FreeAccessRequest, wait int, created bool, now time.Time) accesssdk.QueueStatusResponse {
	return accesssdk.QueueStatusResponse{
		RequestID:        req.ID,
		UserID:           req.UserID,
		RequestedAt:      req.RequestedAt,
		WaitTimeMinutes:  wait,
		RemainingMinutes: service.RemainingMinutes(req, wait, now),
		Created:          created,
	}
}

func toJobReport(rep service.JobReport) accesssdk.JobReport {
	return accesssdk.JobReport{
		Job:        rep.Job,
		RunID:      rep.RunID,
		Trigger:    rep.Trigger,
		Selected:   rep.Selected,
		Succeeded:  rep.Succeeded,
		Failed:     rep.Failed,
		StartedAt:  rep.StartedAt,
		DurationMS: rep.Duration.Milliseconds(),
		Error:      rep.Error,
	}
}

func toJobStatus(st service.JobStatus) accesssdk.JobStatus {
	out := accesssdk.JobStatus{
		Name:     st.Name,
		State:    string(st.State),
		Schedule: st.Schedule,
		NextRun:  st.NextRun,
	}
	if st.LastRun != nil {
		last := toJobReport(*st.LastRun)
		out.LastRun = &last
	}
	return out
}

func toSettings(cfg domain.EngineConfig) accesssdk.Settings {
	return accesssdk.Settings{
		WaitTimeMinutes:            cfg.WaitTimeMinutes,
		DefaultTokenDurationHours:  cfg.DefaultTokenDurationHours,
		TokenLength:                cfg.TokenLength,
		ExpirySweepIntervalMinutes: cfg.ExpirySweepIntervalMinutes,
		QueueSweepIntervalMinutes:  cfg.QueueSweepIntervalMinutes,
	}
}
