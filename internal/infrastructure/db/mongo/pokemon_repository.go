package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pokedex/pokedex-api/internal/core/domain"
	"github.com/pokedex/pokedex-api/internal/core/ports"
)

// PokemonRepository implements ports.PokemonRepository using MongoDB.
type PokemonRepository struct {
	col *mongo.Collection
}

func NewPokemonRepository(db *mongo.Database) *PokemonRepository {
	return &PokemonRepository{col: db.Collection(collectionPokemons)}
}

type pokemonDocument struct {
	ObjectID   primitive.ObjectID `bson:"_id,omitempty"`
	ID         int                `bson:"id"`
	Name       domain.PokemonName `bson:"name"`
	Types      []string           `bson:"type"`
	Base       *domain.BaseStats  `bson:"base,omitempty"`
	Image      string             `bson:"image,omitempty"`
	ShinyImage string             `bson:"shinyImage,omitempty"`
}

func toPokemonDocument(p *domain.Pokemon) pokemonDocument {
	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, string(t))
	}
	return pokemonDocument{
		ID:         p.ID,
		Name:       p.Name,
		Types:      types,
		Base:       p.Base,
		Image:      p.Image,
		ShinyImage: p.ShinyImage,
	}
}

func (d pokemonDocument) toDomain() *domain.Pokemon {
	types := make([]domain.PokemonType, 0, len(d.Types))
	for _, t := range d.Types {
		types = append(types, domain.PokemonType(t))
	}
	return &domain.Pokemon{
		Ref:        d.ObjectID.Hex(),
		ID:         d.ID,
		Name:       d.Name,
		Types:      types,
		Base:       d.Base,
		Image:      d.Image,
		ShinyImage: d.ShinyImage,
	}
}

// listFilter matches the type exactly and the name as a literal,
// case-insensitive substring of either the french or the english name.
func listFilter(q ports.PokemonQuery) bson.M {
	filter := bson.M{}
	if q.Type != "" {
		filter["type"] = string(q.Type)
	}
	if q.Name != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Name), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name.french": pattern},
			bson.M{"name.english": pattern},
		}
	}
	return filter
}

// listSort orders by the requested field and breaks ties by ascending id.
func listSort(s ports.SortSpec) bson.D {
	field := s.Field
	if field == "" {
		field = "id"
	}
	dir := 1
	if s.Desc {
		dir = -1
	}
	sort := bson.D{{Key: field, Value: dir}}
	if field != "id" {
		sort = append(sort, bson.E{Key: "id", Value: 1})
	}
	return sort
}

func (r *PokemonRepository) List(ctx context.Context, q ports.PokemonQuery) ([]*domain.Pokemon, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := listFilter(q)
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count pokemons: %w", err)
	}
	if q.Skip() >= total {
		return []*domain.Pokemon{}, total, nil
	}

	opts := options.Find().
		SetSort(listSort(q.Sort)).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	items, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PokemonRepository) FindByID(ctx context.Context, id int) (*domain.Pokemon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc pokemonDocument
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPokemonNotFound
		}
		return nil, fmt.Errorf("find pokemon %d: %w", id, err)
	}
	return doc.toDomain(), nil
}

func (r *PokemonRepository) FindByIDs(ctx context.Context, ids []int) ([]*domain.Pokemon, error) {
	if len(ids) == 0 {
		return []*domain.Pokemon{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
}

func (r *PokemonRepository) FindByRefs(ctx context.Context, refs []string) ([]*domain.Pokemon, error) {
	oids, err := objectIDs(refs)
	if err != nil {
		return nil, err
	}
	if len(oids) == 0 {
		return []*domain.Pokemon{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
}

func (r *PokemonRepository) Snapshot(ctx context.Context) ([]*domain.Pokemon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
}

func (r *PokemonRepository) Create(ctx context.Context, p *domain.Pokemon) (*domain.Pokemon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toPokemonDocument(p)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPokemonExists
		}
		return nil, fmt.Errorf("insert pokemon: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ObjectID = oid
	}
	return doc.toDomain(), nil
}

func (r *PokemonRepository) Replace(ctx context.Context, p *domain.Pokemon) (*domain.Pokemon, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndReplace().
		SetReturnDocument(options.After).
		SetUpsert(false)

	var doc pokemonDocument
	err := r.col.FindOneAndReplace(ctx, bson.M{"id": p.ID}, toPokemonDocument(p), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPokemonNotFound
		}
		return nil, fmt.Errorf("replace pokemon %d: %w", p.ID, err)
	}
	return doc.toDomain(), nil
}

func (r *PokemonRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete pokemon %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPokemonNotFound
	}
	return nil
}

// ReplaceAll empties the collection and inserts entries in order. It is
// meant for seeding and is not atomic.
func (r *PokemonRepository) ReplaceAll(ctx context.Context, entries []*domain.Pokemon) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("clear pokemons: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(entries))
	for _, p := range entries {
		docs = append(docs, toPokemonDocument(p))
	}
	res, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert pokemons: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (r *PokemonRepository) find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]*domain.Pokemon, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find pokemons: %w", err)
	}
	defer cur.Close(ctx)

	var docs []pokemonDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode pokemons: %w", err)
	}

	out := make([]*domain.Pokemon, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// objectIDs parses storage references. A malformed reference is the
// caller's mistake, not a missing entry.
func objectIDs(refs []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(refs))
	for _, ref := range refs {
		oid, err := primitive.ObjectIDFromHex(ref)
		if err != nil {
			return nil, fmt.Errorf("malformed pokemon reference %q: %w", ref, domain.ErrInvalidArgument)
		}
		out = append(out, oid)
	}
	return out, nil
}
