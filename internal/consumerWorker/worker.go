package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"campusevents/internal/dto"
	"campusevents/internal/mailer"
	"campusevents/internal/rabbit"
	"campusevents/internal/repo"
)

// Reader consumes registration lifecycle messages and turns each into a
// notification email. Mail failures are logged, never retried.
type Reader struct {
	rmq    *rabbit.Client
	repo   repo.Repository
	mail   *mailer.Mailer
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, repository repo.Repository, mail *mailer.Mailer) *Reader {
	return &Reader{
		rmq:  rmq,
		repo: repository,
		mail: mail,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("notification worker started")

	go func() {
		defer close(r.done)

		handler := func(body []byte) error {
			var msg dto.RegistrationEventMessage
			if err := json.Unmarshal(body, &msg); err != nil {
				zlog.Logger.Error().Err(err).Msgf("failed to unmarshal message: %s", string(body))
				return err
			}

			zlog.Logger.Info().
				Str("action", msg.Action).
				Int64("event_id", msg.EventID).
				Int64("student_id", msg.StudentID).
				Msg("received registration message")

			title := msg.EventTitle
			if title == "" {
				event, err := r.repo.GetEventByID(cctx, msg.EventID)
				if err != nil {
					zlog.Logger.Error().Err(err).Int64("event_id", msg.EventID).
						Msg("failed to load event for notification")
					return nil
				}
				title = event.Title
			}

			if msg.Email == "" {
				zlog.Logger.Warn().Int64("student_id", msg.StudentID).
					Msg("message carries no email, skipping notification")
				return nil
			}

			if err := r.mail.SendRegistrationEmail(title, msg.Action, msg.Email); err != nil {
				zlog.Logger.Warn().Err(err).Msg("failed to send notification email")
			}
			return nil
		}

		if err := r.rmq.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("notification worker stopped")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
