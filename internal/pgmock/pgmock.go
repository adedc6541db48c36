// Package pgmock provides the ability to mock a PostgreSQL server. It plays
// the server half of the handshake and query cycle against pgmock.Backend,
// this module's own server-side codec, scripted step by step.
package pgmock

import (
	"fmt"
	"io"
	"reflect"

	"github.com/coriolisdb/pgwire/pgproto"
)

type Step interface {
	Step(*Backend) error
}

type Script struct {
	Steps []Step
}

func (s *Script) Run(backend *Backend) error {
	for _, step := range s.Steps {
		if err := step.Step(backend); err != nil {
			return err
		}
	}
	return nil
}

func (s *Script) Step(backend *Backend) error {
	return s.Run(backend)
}

type expectMessageStep struct {
	want pgproto.FrontendMessage
	any  bool
}

func (e *expectMessageStep) Step(backend *Backend) error {
	msg, err := backend.Receive()
	if err != nil {
		return err
	}

	if e.any && reflect.TypeOf(msg) == reflect.TypeOf(e.want) {
		return nil
	}

	if !reflect.DeepEqual(msg, e.want) {
		return fmt.Errorf("msg => %#v, e.want => %#v", msg, e.want)
	}

	return nil
}

type expectStartupMessageStep struct {
	want pgproto.FrontendMessage
	any  bool
}

func (e *expectStartupMessageStep) Step(backend *Backend) error {
	msg, err := backend.ReceiveStartupMessage()
	if err != nil {
		return err
	}

	if e.any {
		return nil
	}

	if !reflect.DeepEqual(msg, e.want) {
		return fmt.Errorf("msg => %#v, e.want => %#v", msg, e.want)
	}

	return nil
}

// ExpectMessage expects the exact next frontend message, tagged or not.
func ExpectMessage(want pgproto.FrontendMessage) Step {
	return expectMessage(want, false)
}

// ExpectAnyMessage expects a frontend message of want's concrete type,
// ignoring its fields.
func ExpectAnyMessage(want pgproto.FrontendMessage) Step {
	return expectMessage(want, true)
}

func expectMessage(want pgproto.FrontendMessage, any bool) Step {
	switch want.(type) {
	case *pgproto.StartupMessage, *pgproto.SSLRequest, *pgproto.CancelRequest:
		return &expectStartupMessageStep{want: want, any: any}
	}
	return &expectMessageStep{want: want, any: any}
}

type sendMessageStep struct {
	msg pgproto.BackendMessage
}

func (e *sendMessageStep) Step(backend *Backend) error {
	if err := backend.Send(e.msg); err != nil {
		return err
	}
	return backend.Flush()
}

func SendMessage(msg pgproto.BackendMessage) Step {
	return &sendMessageStep{msg: msg}
}

type waitForCloseMessageStep struct{}

func (e *waitForCloseMessageStep) Step(backend *Backend) error {
	for {
		msg, err := backend.Receive()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		if _, ok := msg.(*pgproto.Terminate); ok {
			return nil
		}
	}
}

func WaitForClose() Step {
	return &waitForCloseMessageStep{}
}

// AcceptUnauthenticatedConnRequestSteps answers the startup handshake with
// no authentication required: AuthenticationOk, BackendKeyData, then an idle
// ReadyForQuery, matching a trust-auth server.
func AcceptUnauthenticatedConnRequestSteps() []Step {
	return []Step{
		ExpectAnyMessage(&pgproto.StartupMessage{ProtocolVersion: pgproto.ProtocolVersionNumber, Parameters: map[string]string{}}),
		SendMessage(&pgproto.Authentication{Type: pgproto.AuthTypeOk}),
		SendMessage(&pgproto.BackendKeyData{ProcessID: 0, SecretKey: 0}),
		SendMessage(&pgproto.ReadyForQuery{TxStatus: 'I'}),
	}
}
