// Package mocks provides a testify mock implementation of cast.Conn for
// use in application package tests.
package mocks

import (
	"github.com/stretchr/testify/mock"
	"go2tv.app/go2tv/v2/castprotocol/v2/cast"
	pb "go2tv.app/go2tv/v2/castprotocol/v2/cast/proto"
)

// Conn is a mock.Mock implementation of cast.Conn.
type Conn struct {
	mock.Mock
}

func (c *Conn) Start(addr string, port int) error {
	args := c.Called(addr, port)
	return args.Error(0)
}

func (c *Conn) Send(requestID int, payload cast.Payload, sourceID, destinationID, namespace string) error {
	args := c.Called(requestID, payload, sourceID, destinationID, namespace)
	return args.Error(0)
}

func (c *Conn) MsgChan() <-chan *pb.CastMessage {
	args := c.Called()
	return args.Get(0).(chan *pb.CastMessage)
}

func (c *Conn) Close() error {
	args := c.Called()
	return args.Error(0)
}
