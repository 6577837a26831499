package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/italiano/internal/vocab"
)

// vocabRepo implements VocabRepo with the SQL builder.
type vocabRepo struct {
	db *sql.DB
}

func (r *vocabRepo) Nouns(ctx context.Context) ([]vocab.Noun, error) {
	sel := builder().Select("id", "english", "singular", "plural", "gender").
		From(entsql.Table(NounsTable.Name)).
		OrderBy("position", "id")

	var out []vocab.Noun
	err := query(ctx, r.db, sel, func(rows *sql.Rows) error {
		var n vocab.Noun
		var gender string
		if err := rows.Scan(&n.ID, &n.English, &n.Singular, &n.Plural, &gender); err != nil {
			return err
		}
		n.Gender = vocab.Gender(gender)
		out = append(out, n)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query nouns: %w", err)
	}
	return out, nil
}

func (r *vocabRepo) Adjectives(ctx context.Context) ([]vocab.Adjective, error) {
	sel := builder().Select("id", "english", "masculine_singular", "masculine_plural", "feminine_singular", "feminine_plural").
		From(entsql.Table(AdjectivesTable.Name)).
		OrderBy("position", "id")

	var out []vocab.Adjective
	err := query(ctx, r.db, sel, func(rows *sql.Rows) error {
		var a vocab.Adjective
		if err := rows.Scan(&a.ID, &a.English, &a.MasculineSingular, &a.MasculinePlural, &a.FeminineSingular, &a.FemininePlural); err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query adjectives: %w", err)
	}
	return out, nil
}

func (r *vocabRepo) Verbs(ctx context.Context) ([]vocab.Verb, error) {
	sel := builder().Select("id", "english", "infinitive", "reflexive").
		From(entsql.Table(VerbsTable.Name)).
		OrderBy("position", "id")

	var out []vocab.Verb
	err := query(ctx, r.db, sel, func(rows *sql.Rows) error {
		var v vocab.Verb
		if err := rows.Scan(&v.ID, &v.English, &v.Infinitive, &v.Reflexive); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query verbs: %w", err)
	}
	return out, nil
}

func (r *vocabRepo) Conjugations(ctx context.Context, enabled []vocab.MoodTense) ([]vocab.Conjugation, error) {
	verbs, err := r.Verbs(ctx)
	if err != nil {
		return nil, err
	}

	sel := builder().Select("verb_id", "mood", "tense", "person", "form").
		From(entsql.Table(ConjugationsTable.Name))

	forms := make(map[string]vocab.ConjugationForms)
	err = query(ctx, r.db, sel, func(rows *sql.Rows) error {
		var verbID, mood, tense, person, form string
		if err := rows.Scan(&verbID, &mood, &tense, &person, &form); err != nil {
			return err
		}
		mt := vocab.MoodTense{Mood: vocab.Mood(mood), Tense: vocab.Tense(tense)}
		if forms[verbID] == nil {
			forms[verbID] = make(vocab.ConjugationForms)
		}
		if forms[verbID][mt] == nil {
			forms[verbID][mt] = make(map[vocab.Person]string)
		}
		forms[verbID][mt][vocab.Person(person)] = form
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query conjugations: %w", err)
	}

	var out []vocab.Conjugation
	for _, v := range verbs {
		out = append(out, vocab.ExpandConjugations(v, forms[v.ID], enabled)...)
	}
	return out, nil
}

func (r *vocabRepo) Import(ctx context.Context, doc *vocab.Document) (ImportResult, error) {
	var res ImportResult

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	upsert := []entsql.ConflictOption{entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()}

	for i, e := range doc.Nouns {
		n := e.Noun()
		ins := builder().Insert(NounsTable.Name).
			Columns("id", "position", "english", "singular", "plural", "gender").
			Values(n.ID, i, n.English, n.Singular, n.Plural, string(n.Gender))
		if err := exec(ctx, tx, ins.OnConflict(upsert...)); err != nil {
			return res, fmt.Errorf("import noun %q: %w", n.ID, err)
		}
		res.Nouns++
	}

	for i, e := range doc.Adjectives {
		a := e.Adjective()
		ins := builder().Insert(AdjectivesTable.Name).
			Columns("id", "position", "english", "masculine_singular", "masculine_plural", "feminine_singular", "feminine_plural").
			Values(a.ID, i, a.English, a.MasculineSingular, a.MasculinePlural, a.FeminineSingular, a.FemininePlural)
		if err := exec(ctx, tx, ins.OnConflict(upsert...)); err != nil {
			return res, fmt.Errorf("import adjective %q: %w", a.ID, err)
		}
		res.Adjectives++
	}

	for i, e := range doc.Verbs {
		v := e.Verb()
		ins := builder().Insert(VerbsTable.Name).
			Columns("id", "position", "english", "infinitive", "reflexive").
			Values(v.ID, i, v.English, v.Infinitive, v.Reflexive)
		if err := exec(ctx, tx, ins.OnConflict(upsert...)); err != nil {
			return res, fmt.Errorf("import verb %q: %w", v.ID, err)
		}
		res.Verbs++

		for mt, table := range e.Forms() {
			for person, form := range table {
				ins := builder().Insert(ConjugationsTable.Name).
					Columns("verb_id", "mood", "tense", "person", "form").
					Values(v.ID, string(mt.Mood), string(mt.Tense), string(person), form).
					OnConflict(
						entsql.ConflictColumns("verb_id", "mood", "tense", "person"),
						entsql.ResolveWithNewValues(),
					)
				if err := exec(ctx, tx, ins); err != nil {
					return res, fmt.Errorf("import %s %s of %q: %w", mt, person, v.ID, err)
				}
			}
			res.Conjugations++
		}
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("commit import: %w", err)
	}
	return res, nil
}
