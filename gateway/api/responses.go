package api

import (
	"github.com/absmach/edgefl/pkg/fl"
)

type normalizeRes struct {
	Shape []int `json:"shape"`
	Input any   `json:"input"`
}

type inferRes struct {
	Shape  []int       `json:"shape"`
	Result fl.Response `json:"result"`
}

type serverRes struct {
	fl.Response
}

type probeNodesRes struct {
	Nodes []fl.NodeStatus `json:"nodes"`
}

type healthRes struct {
	Status string `json:"status"`
}

type errorRes struct {
	Error      string `json:"error"`
	Kind       string `json:"kind,omitempty"`
	StatusCode int    `json:"upstream_status,omitempty"`
}
