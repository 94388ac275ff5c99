// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package systemd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/host-assessment/pkg/defaults"
)

// unitConn is the subset of the systemd D-Bus connection used here.
type unitConn interface {
	GetUnitNameByPID(ctx context.Context, pid uint32) (string, error)
	Close()
}

// Units maps process ids to the systemd units that own them.
type Units struct {
	conn unitConn
}

// Connect opens a connection to the system instance of systemd.
func Connect(ctx context.Context) (*Units, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.SystemdConnectTimeout)
	defer cancel()

	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	return &Units{conn: conn}, nil
}

// Unit returns the name of the unit whose control group contains pid.
func (u *Units) Unit(ctx context.Context, pid int) (string, error) {
	if pid <= 0 {
		return "", fmt.Errorf("invalid pid %d", pid)
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.SystemdUnitLookupTimeout)
	defer cancel()

	name, err := u.conn.GetUnitNameByPID(ctx, uint32(pid))
	if err != nil {
		slog.Debug("unit lookup failed", slog.Int("pid", pid), slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to resolve unit of pid %d: %w", pid, err)
	}
	return name, nil
}

// Close releases the D-Bus connection.
func (u *Units) Close() {
	if u != nil && u.conn != nil {
		u.conn.Close()
	}
}
