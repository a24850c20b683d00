package cast

// LaunchRequest asks the receiver to launch an application.
type LaunchRequest struct {
	PayloadHeader
	AppId string `json:"appId"`
}

func NewLaunchRequest(appID string) *LaunchRequest {
	return &LaunchRequest{PayloadHeader: LaunchHeader, AppId: appID}
}

// StopSessionRequest asks the receiver to stop a running application session.
type StopSessionRequest struct {
	PayloadHeader
	SessionId SessionID `json:"sessionId"`
}

func NewStopSessionRequest(session SessionID) *StopSessionRequest {
	return &StopSessionRequest{PayloadHeader: StopHeader, SessionId: session}
}

// GetAppAvailabilityRequest asks the receiver whether it can run the given apps.
type GetAppAvailabilityRequest struct {
	PayloadHeader
	AppId []string `json:"appId"`
}

func NewGetAppAvailabilityRequest(appIDs []string) *GetAppAvailabilityRequest {
	return &GetAppAvailabilityRequest{PayloadHeader: GetAppAvailabilityHeader, AppId: appIDs}
}

// GetAppAvailabilityResponse maps each requested app id to "APP_AVAILABLE"/"APP_UNAVAILABLE".
type GetAppAvailabilityResponse struct {
	PayloadHeader
	Availability map[string]string `json:"availability"`
}

// SetVolumeRequest changes the device volume. Absent Volume fields are
// omitted from JSON by Volume's own omitempty tags.
type SetVolumeRequest struct {
	PayloadHeader
	Volume Volume `json:"volume"`
}

func NewSetVolumeRequest(level *float64, muted *bool) *SetVolumeRequest {
	return &SetVolumeRequest{
		PayloadHeader: VolumeHeader,
		Volume:        Volume{Level: level, Muted: muted},
	}
}

// Namespace is a namespace a launched application supports.
type Namespace struct {
	Name string `json:"name"`
}

// Application is one entry of a RECEIVER_STATUS response's applications list.
type Application struct {
	AppId        string      `json:"appId"`
	DisplayName  string      `json:"displayName"`
	IsIdleScreen bool        `json:"isIdleScreen"`
	SessionId    SessionID   `json:"sessionId"`
	StatusText   string      `json:"statusText"`
	TransportId  TransportID `json:"transportId"`
	Namespaces   []Namespace `json:"namespaces"`
}

// ReceiverStatusPayload is the "status" object of a RECEIVER_STATUS message.
type ReceiverStatusPayload struct {
	Applications []Application `json:"applications"`
	Volume       Volume        `json:"volume"`
}

// ReceiverStatusResponse is the receiver channel's one untagged response kind.
type ReceiverStatusResponse struct {
	PayloadHeader
	Status ReceiverStatusPayload `json:"status"`
}

// FindApp returns the application entry matching appID, if the receiver
// reports one running.
func (r *ReceiverStatusResponse) FindApp(appID string) (Application, bool) {
	for _, app := range r.Status.Applications {
		if app.AppId == appID {
			return app, true
		}
	}
	return Application{}, false
}
