package dto

type RegisterInput struct {
	Username string
	Password string
	Confirm  string
}

type LoginInput struct {
	Username string
	Password string
}

type SettingsInput struct {
	Username   string
	Theme      string
	HomepageBg string
	TodoBg     string
}

type SettingsOutput struct {
	Theme      string
	HomepageBg string
	TodoBg     string
}

type ProfileInput struct {
	Username  string
	Nickname  string
	Signature string
	Age       string
	Gender    string
	Birthday  string
	Zodiac    string
	Location  string
	School    string
	Phone     string
	Email     string
}

type PhotoInput struct {
	Username string
	DataURL  string
	Desc     string
}

type PhotoOutput struct {
	ID       string
	Desc     string
	ShowDesc bool
}

type ProfileOutput struct {
	Nickname  string
	Signature string
	Age       string
	Gender    string
	Birthday  string
	Zodiac    string
	Location  string
	School    string
	Phone     string
	Email     string
	Photos    []PhotoOutput
}
