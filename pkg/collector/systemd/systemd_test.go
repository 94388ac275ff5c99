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
	"errors"
	"testing"
)

type fakeConn struct {
	units  map[uint32]string
	closed bool
}

func (f *fakeConn) GetUnitNameByPID(_ context.Context, pid uint32) (string, error) {
	if name, ok := f.units[pid]; ok {
		return name, nil
	}
	return "", errors.New("no unit for pid")
}

func (f *fakeConn) Close() { f.closed = true }

func TestUnits_Unit(t *testing.T) {
	conn := &fakeConn{units: map[uint32]string{812: "sshd.service"}}
	u := &Units{conn: conn}

	tests := []struct {
		name    string
		pid     int
		want    string
		wantErr bool
	}{
		{name: "known pid", pid: 812, want: "sshd.service"},
		{name: "unknown pid", pid: 999, wantErr: true},
		{name: "invalid pid", pid: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u.Unit(context.Background(), tt.pid)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Unit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnits_Close(t *testing.T) {
	conn := &fakeConn{}
	u := &Units{conn: conn}
	u.Close()
	if !conn.closed {
		t.Error("expected connection to be closed")
	}

	var nilUnits *Units
	nilUnits.Close()
}

func TestConnect_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u, err := Connect(ctx)
	if err == nil {
		u.Close()
		t.Skip("system bus accepted a canceled context")
	}
}
