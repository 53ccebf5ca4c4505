package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"mekina/internal/adapters/out/events"
	"mekina/internal/core/domain/model/order"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisPublisherTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
}

func (s *RedisPublisherTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(ctx, "")
	s.Require().NoError(err)

	s.client = redis.NewClient(&redis.Options{Addr: endpoint})
	s.Require().NoError(s.client.Ping(ctx).Err())
}

func (s *RedisPublisherTestSuite) TearDownSuite() {
	if s.client != nil {
		s.Require().NoError(s.client.Close())
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *RedisPublisherTestSuite) TestPublish_DeliversToBothChannels() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	evts := lifecycleEvents(s.T())
	publisher := events.NewRedisPublisher(s.client, "")
	orderChannel := publisher.OrderChannel(evts[0].OrderID.String())

	sub := s.client.Subscribe(ctx, events.DefaultChannel, orderChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	s.Require().NoError(err)

	s.Require().NoError(publisher.Publish(ctx, evts...))

	byChannel := map[string][]events.Message{}
	for range 2 * len(evts) {
		msg, err := sub.ReceiveMessage(ctx)
		s.Require().NoError(err)

		var m events.Message
		s.Require().NoError(json.Unmarshal([]byte(msg.Payload), &m))
		byChannel[msg.Channel] = append(byChannel[msg.Channel], m)
	}

	s.Len(byChannel[events.DefaultChannel], 2)
	s.Len(byChannel[orderChannel], 2)
	s.Equal(order.EventPlaced, byChannel[orderChannel][0].Name)
	s.Equal("processing", byChannel[orderChannel][1].To)
}

func TestRedisPublisherTestSuite(t *testing.T) {
	suite.Run(t, new(RedisPublisherTestSuite))
}
