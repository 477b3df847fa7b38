package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pokedex/pokedex-api/internal/core/domain"
)

// TeamRepository implements ports.TeamRepository using MongoDB. Every filter
// carries both the team id and the owner id.
type TeamRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	return &TeamRepository{col: db.Collection(collectionTeams), now: time.Now}
}

type teamDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	UserID    primitive.ObjectID   `bson:"user"`
	Name      string               `bson:"name"`
	Members   []primitive.ObjectID `bson:"pokemons"`
	CreatedAt int64                `bson:"created_at"`
	UpdatedAt int64                `bson:"updated_at"`
}

func (d teamDocument) toDomain() *domain.Team {
	members := make([]string, 0, len(d.Members))
	for _, m := range d.Members {
		members = append(members, m.Hex())
	}
	return &domain.Team{
		ID:        d.ID.Hex(),
		UserID:    d.UserID.Hex(),
		Name:      d.Name,
		Members:   members,
		CreatedAt: unixToTime(d.CreatedAt),
		UpdatedAt: unixToTime(d.UpdatedAt),
	}
}

// ownerFilter scopes a query to one team of one user. Ids that cannot be
// parsed match nothing, which callers report as not found.
func ownerFilter(id, userID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTeamNotFound
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrTeamNotFound
	}
	return bson.M{"_id": oid, "user": uid}, nil
}

// appendGuard extends an owner filter so that a push only matches while the
// team has a free slot and does not hold ref yet.
func appendGuard(filter bson.M, ref primitive.ObjectID) bson.M {
	guarded := bson.M{
		"pokemons": bson.M{"$ne": ref},
		"pokemons." + strconv.Itoa(domain.MaxTeamSize-1): bson.M{"$exists": false},
	}
	for k, v := range filter {
		guarded[k] = v
	}
	return guarded
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	uid, err := primitive.ObjectIDFromHex(team.UserID)
	if err != nil {
		return nil, fmt.Errorf("team owner %q: %w", team.UserID, domain.ErrInvalidArgument)
	}
	members, err := objectIDs(team.Members)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now().Unix()
	doc := teamDocument{UserID: uid, Name: team.Name, Members: members, CreatedAt: now, UpdatedAt: now}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert team: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) FindByID(ctx context.Context, id, userID string) (*domain.Team, error) {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc teamDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, fmt.Errorf("find team: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Team, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []*domain.Team{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"user": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer cur.Close(ctx)

	var docs []teamDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode teams: %w", err)
	}
	out := make([]*domain.Team, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) Update(ctx context.Context, id, userID, name string, members []string) (*domain.Team, error) {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}
	oids, err := objectIDs(members)
	if err != nil {
		return nil, err
	}
	team, err := r.findOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{
		"name":       name,
		"pokemons":   oids,
		"updated_at": r.now().Unix(),
	}})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTeamNotFound
	}
	return team, err
}

func (r *TeamRepository) Rename(ctx context.Context, id, userID, name string) (*domain.Team, error) {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}
	team, err := r.findOneAndUpdate(ctx, filter, bson.M{"$set": bson.M{"name": name, "updated_at": r.now().Unix()}})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrTeamNotFound
	}
	return team, err
}

// AppendMember pushes ref in a single guarded update. When the guard does not
// match, a second lookup tells a vanished team from a lost race.
func (r *TeamRepository) AppendMember(ctx context.Context, id, userID, ref string) (*domain.Team, error) {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}
	oids, err := objectIDs([]string{ref})
	if err != nil {
		return nil, err
	}

	team, err := r.findOneAndUpdate(ctx, appendGuard(filter, oids[0]), bson.M{
		"$push": bson.M{"pokemons": oids[0]},
		"$set":  bson.M{"updated_at": r.now().Unix()},
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.guardFailure(ctx, filter)
	}
	return team, err
}

// SwapMembers writes members only while the stored list still equals expected.
func (r *TeamRepository) SwapMembers(ctx context.Context, id, userID string, expected, members []string) (*domain.Team, error) {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return nil, err
	}
	prev, err := objectIDs(expected)
	if err != nil {
		return nil, err
	}
	next, err := objectIDs(members)
	if err != nil {
		return nil, err
	}

	guarded := bson.M{"pokemons": prev}
	for k, v := range filter {
		guarded[k] = v
	}
	team, err := r.findOneAndUpdate(ctx, guarded, bson.M{"$set": bson.M{"pokemons": next, "updated_at": r.now().Unix()}})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, r.guardFailure(ctx, filter)
	}
	return team, err
}

func (r *TeamRepository) Delete(ctx context.Context, id, userID string) error {
	filter, err := ownerFilter(id, userID)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"user": uid})
	if err != nil {
		return 0, fmt.Errorf("delete teams: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *TeamRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc teamDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("update team: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TeamRepository) guardFailure(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("recheck team: %w", err)
	}
	if n == 0 {
		return domain.ErrTeamNotFound
	}
	return fmt.Errorf("team changed concurrently: %w", domain.ErrConflict)
}
