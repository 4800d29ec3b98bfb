package picker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ChannelSubmitter serializes a draft and pushes it into a HostChannel.
type ChannelSubmitter struct {
	channel HostChannel
	logger  *zap.Logger
}

func NewChannelSubmitter(channel HostChannel, logger *zap.Logger) (*ChannelSubmitter, error) {
	if channel == nil {
		return nil, errors.New("host channel is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChannelSubmitter{channel: channel, logger: logger}, nil
}

func (submitter *ChannelSubmitter) Submit(ctx context.Context, draft Draft) error {
	payload, err := draft.Payload()
	if err != nil {
		return err
	}
	if err := submitter.channel.SendData(ctx, payload); err != nil {
		submitter.logger.Warn("booking hand-off failed",
			zap.String("date", draft.Date.String()),
			zap.String("time", draft.Time),
			zap.Error(err),
		)
		return fmt.Errorf("hand off booking: %w", err)
	}
	submitter.logger.Info("booking handed off",
		zap.String("date", draft.Date.String()),
		zap.String("time", draft.Time),
	)
	return nil
}
