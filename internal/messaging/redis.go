package messaging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"mover-service/internal/config"
	"mover-service/internal/logger"
	"mover-service/internal/types"

	"github.com/redis/go-redis/v9"
)

var (
	ErrIdentityTimeout  = errors.New("identity service did not respond")
	ErrIdentityRejected = errors.New("identity service rejected request")
)

// Callbacks are invoked from the single dispatch goroutine, one message at a time.
type Callbacks struct {
	TelemetryCallback func(types.Telemetry) error
	CommandCallback   func(types.Command) error
}

type RedisClient struct {
	client    *redis.Client
	channels  config.ChannelConfig
	callbacks Callbacks
	logger    *logger.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewRedisClient(addr string, channels config.ChannelConfig, l *logger.Logger) *RedisClient {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisClient{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   0,
		}),
		channels: channels,
		logger:   l,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (r *RedisClient) SetCallbacks(callbacks Callbacks) {
	r.callbacks = callbacks
}

func (r *RedisClient) Connect() error {
	r.logger.Infof("Attempting to connect to Redis at %s", r.client.Options().Addr)

	if err := r.client.Ping(r.ctx).Err(); err != nil {
		r.logger.Infof("Redis connection failed: %v", err)
		return fmt.Errorf("Redis connection failed: %w", err)
	}
	r.logger.Infof("Successfully connected to Redis")
	return nil
}

// StartListening subscribes to the telemetry and operator command channels.
// Both channels share one subscription so messages are dispatched in
// arrival order on a single goroutine.
func (r *RedisClient) StartListening() error {
	r.logger.Infof("Starting Redis listeners")

	pubsub := r.client.Subscribe(r.ctx, r.channels.Telemetry, r.channels.GCSCommands)
	if _, err := pubsub.Receive(r.ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	r.logger.Infof("Subscribed to Redis channels: %s, %s", r.channels.Telemetry, r.channels.GCSCommands)

	r.wg.Add(1)
	go r.redisListener(pubsub)

	return nil
}

func (r *RedisClient) redisListener(pubsub *redis.PubSub) {
	defer r.wg.Done()
	defer pubsub.Close()

	r.logger.Infof("Starting Redis message listener")
	channel := pubsub.Channel()

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Infof("Context cancelled, exiting listener")
			return
		case msg, ok := <-channel:
			if !ok {
				if r.ctx.Err() != nil {
					return
				}
				r.logger.Fatalf("Redis connection lost, exiting to allow systemd restart")
			}
			if msg == nil {
				r.logger.Fatalf("Redis connection lost, exiting to allow systemd restart")
			}

			r.dispatch(msg.Channel, msg.Payload)
		}
	}
}

func (r *RedisClient) dispatch(channel, payload string) {
	switch channel {
	case r.channels.Telemetry:
		if r.callbacks.TelemetryCallback == nil {
			return
		}
		telem, err := DecodeTelemetry([]byte(payload))
		if err != nil {
			r.logger.Warnf("Dropping malformed telemetry: %v", err)
			return
		}
		if err := r.callbacks.TelemetryCallback(telem); err != nil {
			r.logger.Warnf("Error handling telemetry from plane %d: %v", telem.PlaneID, err)
		}

	case r.channels.GCSCommands:
		if r.callbacks.CommandCallback == nil {
			return
		}
		cmd, err := DecodeCommand([]byte(payload))
		if err != nil {
			r.logger.Warnf("Dropping malformed command: %v", err)
			return
		}
		if err := r.callbacks.CommandCallback(cmd); err != nil {
			r.logger.Warnf("Error handling command for plane %d: %v", cmd.PlaneID, err)
		}

	default:
		r.logger.Debugf("Unhandled channel %s", channel)
	}
}

// PublishCommand sends a command to the flight controller channel.
func (r *RedisClient) PublishCommand(cmd types.Command) error {
	payload, err := EncodeCommand(cmd)
	if err != nil {
		return err
	}
	if err := r.client.Publish(r.ctx, r.channels.CACommands, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish command: %w", err)
	}
	return nil
}

// PublishMode atomically records the current mode with a timestamp and
// notifies subscribers.
func (r *RedisClient) PublishMode(mode types.Mode) error {
	r.logger.Infof("Publishing mover mode: %s", mode)
	timestamp := time.Now().Format(time.RFC3339)

	pipe := r.client.Pipeline()
	pipe.HSet(r.ctx, r.channels.ModeHash, "mode", string(mode))
	pipe.HSet(r.ctx, r.channels.ModeHash, "mode:timestamp", timestamp)
	pipe.Publish(r.ctx, r.channels.ModeHash, "mode")
	_, err := pipe.Exec(r.ctx)

	if err != nil {
		r.logger.Warnf("Failed to publish mover mode: %v", err)
		return err
	}
	return nil
}

// PublishPlaneID records which plane this instance is arbitrating for.
func (r *RedisClient) PublishPlaneID(planeID int) error {
	pipe := r.client.Pipeline()
	pipe.HSet(r.ctx, r.channels.ModeHash, "plane-id", planeID)
	pipe.Publish(r.ctx, r.channels.ModeHash, "plane-id")
	_, err := pipe.Exec(r.ctx)
	return err
}

// RequestIdentity asks the identity service for this vehicle's id and start
// position. The request is pushed onto the request list with a private reply
// key; the call blocks on that key until the response or the timeout.
func (r *RedisClient) RequestIdentity(timeout time.Duration) (types.Identity, error) {
	replyKey := fmt.Sprintf("%s:reply:%d:%d", r.channels.IdentityRequest, os.Getpid(), time.Now().UnixNano())

	req, err := EncodeIdentityRequest(IdentityRequest{ReplyTo: replyKey})
	if err != nil {
		return types.Identity{}, err
	}

	r.logger.Infof("Requesting plane identity on %s", r.channels.IdentityRequest)
	if err := r.client.LPush(r.ctx, r.channels.IdentityRequest, req).Err(); err != nil {
		return types.Identity{}, fmt.Errorf("failed to send identity request: %w", err)
	}

	result, err := r.client.BRPop(r.ctx, timeout, replyKey).Result()
	if err != nil {
		if err == redis.Nil {
			// Withdraw the request so a late identity service does not answer a dead reply key.
			if rerr := r.client.LRem(r.ctx, r.channels.IdentityRequest, 1, req).Err(); rerr != nil {
				r.logger.Warnf("Failed to withdraw identity request: %v", rerr)
			}
			return types.Identity{}, fmt.Errorf("%w after %s", ErrIdentityTimeout, timeout)
		}
		return types.Identity{}, fmt.Errorf("failed to read identity response: %w", err)
	}
	if len(result) < 2 { // BRPOP returns [key, value]
		return types.Identity{}, fmt.Errorf("short identity response: %v", result)
	}

	resp, err := DecodeIdentityResponse([]byte(result[1]))
	if err != nil {
		return types.Identity{}, err
	}
	if !resp.OK {
		if resp.Error != "" {
			return types.Identity{}, fmt.Errorf("%w: %s", ErrIdentityRejected, resp.Error)
		}
		return types.Identity{}, ErrIdentityRejected
	}
	return resp.Identity, nil
}

func (r *RedisClient) Close() error {
	r.logger.Infof("Closing Redis client")
	r.cancel()

	// Wait for all goroutines to finish with a timeout
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Infof("All Redis goroutines finished")
	case <-time.After(5 * time.Second):
		r.logger.Infof("Timeout waiting for Redis goroutines to finish")
	}

	return r.client.Close()
}
