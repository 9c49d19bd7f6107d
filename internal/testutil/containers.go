// containers.go
//
// A progress tracking data service for base buildings, hero rosters and research
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of basetrack.
// basetrack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// basetrack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with basetrack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/localnerve/basetrack/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DefaultPostgresImage is used when POSTGRES_IMAGE is not set
const DefaultPostgresImage = "postgres:17-alpine"

// PostgresContainer is a running throwaway Postgres
type PostgresContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
	User      string
	Password  string
	Database  string
}

// Config returns a basetrack configuration pointing at the container
func (p *PostgresContainer) Config() *config.Config {
	return &config.Config{
		DBType:            "postgres",
		DBHost:            p.Host,
		DBPort:            p.Port,
		DBDatabase:        p.Database,
		DBUser:            p.User,
		DBPassword:        p.Password,
		DBConnectionLimit: 4,
		DBLogLevel:        "silent",
		OwnerColumn:       "owner_id",
	}
}

// Terminate stops and removes the container
func (p *PostgresContainer) Terminate(ctx context.Context) {
	if p.Container == nil {
		return
	}
	if err := p.Container.Terminate(ctx); err != nil {
		log.Printf("Failed to terminate Postgres: %v", err)
	}
}

// StartPostgres starts a Postgres container with its data directory on tmpfs.
// keepPort binds the container port to the same host port, for local development.
func StartPostgres(ctx context.Context, keepPort bool) (*PostgresContainer, error) {
	image := os.Getenv("POSTGRES_IMAGE")
	if image == "" {
		image = DefaultPostgresImage
	}
	pg := &PostgresContainer{
		User:     "basetrack",
		Password: "basetrack",
		Database: "basetrack",
	}

	tcpPort, err := nat.NewPort("tcp", "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to create Postgres port: %w", err)
	}

	hostConfigModifier := func(hostConfig *container.HostConfig) {
		hostConfig.Tmpfs = map[string]string{"/var/lib/postgresql/data": "rw"}
		if keepPort {
			hostConfig.PortBindings = nat.PortMap{
				tcpPort: []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: tcpPort.Port()}},
			}
		}
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"POSTGRES_USER":     pg.User,
				"POSTGRES_PASSWORD": pg.Password,
				"POSTGRES_DB":       pg.Database,
			},
			HostConfigModifier: hostConfigModifier,
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(tcpPort),
			).WithStartupTimeoutDefault(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Postgres: %w", err)
	}
	pg.Container = c

	host, err := c.Host(ctx)
	if err != nil {
		pg.Terminate(ctx)
		return nil, fmt.Errorf("failed to get Postgres host: %w", err)
	}
	port, err := c.MappedPort(ctx, tcpPort)
	if err != nil {
		pg.Terminate(ctx)
		return nil, fmt.Errorf("failed to get Postgres port: %w", err)
	}
	pg.Host, pg.Port = host, port.Port()

	log.Printf("Postgres testcontainer started at %s:%s", pg.Host, pg.Port)
	return pg, nil
}
