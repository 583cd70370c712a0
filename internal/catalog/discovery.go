/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package catalog

import (
	"fmt"
	"os"

	"github.com/hashicorp/mdns"
)

// LAN discovery so stores on the same network find a running catalog without
// typing addresses. Advertised only when GLD_MDNS is set on the server side.

const mdnsServiceType = "_gldcatalog._tcp"

// Advertise registers the catalog service on the local network. The returned
// server must be shut down when the catalog stops.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}
	service, err := mdns.NewMDNSService(
		host,
		mdnsServiceType,
		"", // domain, ".local" by default
		"", // OS hostname
		port,
		nil, // auto-detect IPs
		[]string{"Go Label Designer catalog"},
	)
	if err != nil {
		return nil, fmt.Errorf("mdns service: %w", err)
	}
	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("mdns server: %w", err)
	}
	return server, nil
}

// Browse looks for catalogs on the local network and calls found with each
// "host:port" it sees. It returns once the lookup completes.
func Browse(found func(addr string)) error {
	entries := make(chan *mdns.ServiceEntry, 8)
	go func() {
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			found(fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port))
		}
	}()
	return mdns.Lookup(mdnsServiceType, entries)
}
