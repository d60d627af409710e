package dto

// RegistryMachine is one machine as served by the machine registry API.
type RegistryMachine struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	MachineType string `json:"machine_type"`
	Status      string `json:"status"`
}

type RegistryMachineListResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    []RegistryMachine `json:"data"`
}
