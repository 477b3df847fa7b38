package domain

// TypeCount is the number of Pokémon carrying a type.
type TypeCount struct {
	Type  PokemonType `json:"_id"`
	Count int         `json:"count"`
}

// TypeAverage is the mean of one attribute over the Pokémon of a type.
type TypeAverage struct {
	Type    PokemonType `json:"_id"`
	Average float64     `json:"average"`
	Samples int         `json:"samples"`
}

// GlobalAverages holds the headline averages computed over the Pokémon that
// have all four of HP, Attack, Defense and Speed.
type GlobalAverages struct {
	HP      float64 `json:"avgHP"`
	Attack  float64 `json:"avgAttack"`
	Defense float64 `json:"avgDefense"`
	Speed   float64 `json:"avgSpeed"`
	Samples int     `json:"samples"`
}

// StatsOverview bundles every figure served by the stats endpoint.
type StatsOverview struct {
	TotalPokemons  int             `json:"totalPokemons"`
	CountByType    []TypeCount     `json:"countByType"`
	AverageAttr    Attribute       `json:"averageAttribute"`
	AverageByType  []TypeAverage   `json:"averageByType"`
	GlobalAverages *GlobalAverages `json:"globalAvg"`
	HighestAttack  *Pokemon        `json:"highestAttack"`
	HighestHP      *Pokemon        `json:"highestHP"`
	Fastest        *Pokemon        `json:"fastestPokemon"`
	HighestDefense *Pokemon        `json:"highestDefense"`
}
