package eventbridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
	"github.com/google/uuid"

	appconfig "ms-structured-data/internal/config"
	"ms-structured-data/internal/models"
)

const (
	presaleStartPrefix = "sd-presale-start-"
	presaleEndPrefix   = "sd-presale-end-"
)

// Service maintains one-shot EventBridge schedules that fire a cache
// invalidation when an event's presale window opens or closes, so the cached
// availability flips promptly instead of waiting for the TTL.
type Service struct {
	SchedulerClient *scheduler.Client
	Config          appconfig.Config
}

// NewService creates a new scheduler service.
func NewService(cfg appconfig.Config, schedulerClient *scheduler.Client) *Service {
	return &Service{
		SchedulerClient: schedulerClient,
		Config:          cfg,
	}
}

// EnsurePresaleSchedules creates or updates the invalidation schedules for
// both presale boundaries. Boundaries in the past get their schedule removed
// instead. Timestamps arrive as Debezium microseconds.
func (s *Service) EnsurePresaleSchedules(eventID string, presaleStartMicros, presaleEndMicros *int64) {
	now := time.Now()
	s.ensureBoundary(eventID, presaleStartMicros, now, presaleStartPrefix, "presale_start")
	s.ensureBoundary(eventID, presaleEndMicros, now, presaleEndPrefix, "presale_end")
}

func (s *Service) ensureBoundary(eventID string, micros *int64, now time.Time, namePrefix, reason string) {
	if micros == nil {
		s.deleteSchedule(eventID, namePrefix)
		return
	}
	at := MicrosecondsToTime(*micros)
	if !at.After(now) {
		s.deleteSchedule(eventID, namePrefix)
		return
	}
	if err := s.createOrUpdateSchedule(eventID, at, namePrefix, reason); err != nil {
		log.Printf("Failed to ensure %s schedule for event %s: %v", reason, eventID, err)
	}
}

// createOrUpdateSchedule handles the idempotent create/update of a one-shot
// schedule targeting the SQS invalidation queue.
func (s *Service) createOrUpdateSchedule(eventID string, scheduleTime time.Time, namePrefix, reason string) error {
	scheduleName := namePrefix + eventID
	log.Printf("Creating/updating schedule '%s' at time: %s", scheduleName, scheduleTime)

	// Format time for EventBridge Scheduler expression: at(YYYY-MM-DDTHH:mm:ss)
	scheduleExpression := fmt.Sprintf("at(%s)", scheduleTime.UTC().Format("2006-01-02T15:04:05"))

	inputJSON, err := json.Marshal(models.InvalidationMessage{
		EventID: eventID,
		Reason:  reason,
	})
	if err != nil {
		log.Printf("Error marshaling invalidation message to JSON: %v", err)
		return err
	}

	target := types.Target{
		Arn:     aws.String(s.Config.SQSInvalidationQueueARN),
		RoleArn: aws.String(s.Config.SchedulerRoleARN),
		Input:   aws.String(string(inputJSON)),
	}

	// First, try to create the schedule
	_, err = s.SchedulerClient.CreateSchedule(context.TODO(), &scheduler.CreateScheduleInput{
		Name:                       aws.String(scheduleName),
		GroupName:                  aws.String(s.Config.SchedulerGroupName),
		ScheduleExpression:         aws.String(scheduleExpression),
		Target:                     &target,
		FlexibleTimeWindow:         &types.FlexibleTimeWindow{Mode: types.FlexibleTimeWindowModeOff},
		ActionAfterCompletion:      types.ActionAfterCompletionDelete,
		ScheduleExpressionTimezone: aws.String("UTC"),
		ClientToken:                aws.String(uuid.NewString()),
	})

	if err != nil {
		var conflict *types.ConflictException
		if errors.As(err, &conflict) {
			log.Printf("Schedule '%s' already exists. Attempting to update.", scheduleName)
			_, updateErr := s.SchedulerClient.UpdateSchedule(context.TODO(), &scheduler.UpdateScheduleInput{
				Name:                       aws.String(scheduleName),
				GroupName:                  aws.String(s.Config.SchedulerGroupName),
				ScheduleExpression:         aws.String(scheduleExpression),
				Target:                     &target,
				FlexibleTimeWindow:         &types.FlexibleTimeWindow{Mode: types.FlexibleTimeWindowModeOff},
				ActionAfterCompletion:      types.ActionAfterCompletionDelete,
				ScheduleExpressionTimezone: aws.String("UTC"),
			})
			if updateErr != nil {
				log.Printf("Failed to update schedule '%s': %v", scheduleName, updateErr)
				return updateErr
			}
			log.Printf("Successfully updated schedule '%s'", scheduleName)
			return nil
		}
		log.Printf("Failed to create schedule '%s': %v", scheduleName, err)
		return err
	}

	log.Printf("Successfully created schedule '%s'", scheduleName)
	return nil
}

// DeleteSchedules removes both presale-boundary schedules for an event.
func (s *Service) DeleteSchedules(eventID string) {
	s.deleteSchedule(eventID, presaleStartPrefix)
	s.deleteSchedule(eventID, presaleEndPrefix)
}

func (s *Service) deleteSchedule(eventID, namePrefix string) {
	scheduleName := namePrefix + eventID

	_, err := s.SchedulerClient.DeleteSchedule(context.TODO(), &scheduler.DeleteScheduleInput{
		Name:      aws.String(scheduleName),
		GroupName: aws.String(s.Config.SchedulerGroupName),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			// The schedule may have already fired and deleted itself.
			return
		}
		log.Printf("Error deleting schedule '%s': %v", scheduleName, err)
		return
	}
	log.Printf("Successfully deleted schedule '%s'", scheduleName)
}

// MicrosecondsToTime converts a Debezium microsecond timestamp to a Go time.Time.
func MicrosecondsToTime(microseconds int64) time.Time {
	return time.Unix(0, microseconds*1000)
}
