package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another tracker instance is running.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	instancePortBase  = 20000
	instancePortRange = 20000
)

// Instance is the claim held by the running tray application. The claim is
// a loopback listener on a port derived from the application name, so it
// disappears with the process even after a crash.
type Instance struct {
	listener net.Listener
}

// ClaimInstance claims the single tray instance for appName.
func ClaimInstance(appName string) (*Instance, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s busy: %v", ErrAlreadyRunning, address, err)
	}
	return &Instance{listener: listener}, nil
}

// Release gives up the claim.
func (instance *Instance) Release() error {
	if instance == nil || instance.listener == nil {
		return nil
	}
	err := instance.listener.Close()
	instance.listener = nil
	return err
}

func instanceAddress(appName string) string {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return fmt.Sprintf("127.0.0.1:%d", instancePortBase+int(hash.Sum32()%instancePortRange))
}
